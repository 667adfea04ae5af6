package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/clachance14/CostTrak-sub001/internal/config"
	"github.com/clachance14/CostTrak-sub001/internal/forecast"
	"github.com/clachance14/CostTrak-sub001/internal/labor"
	"github.com/clachance14/CostTrak-sub001/internal/perdiem"
	"github.com/clachance14/CostTrak-sub001/internal/records"
	"github.com/clachance14/CostTrak-sub001/internal/wbs"
	"github.com/clachance14/CostTrak-sub001/pkg/constants"
	"github.com/clachance14/CostTrak-sub001/pkg/output"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to engine configuration file")
	snapshotLocation := flag.String("snapshot", constants.DefaultSnapshotFile, "path to project snapshot file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	includeWBS := flag.Bool("wbs", false, "include the generated WBS tree in the output")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := output.ValidateFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.Validate() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	snapshot, err := records.LoadSnapshot(*snapshotLocation)
	if err != nil {
		logger.Fatal(fmt.Sprintf("failed to load project snapshot at %s", *snapshotLocation),
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	report := buildReport(conf, snapshot, *includeWBS, logger)

	switch outputFormat {
	case constants.OutputFormatCSV:
		output.CsvFormat(report)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(report); err != nil {
			logger.Fatal("failed to render report",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	default:
		output.PrettyFormat(report)
	}
}

// buildReport runs the full calculation pipeline over one project snapshot.
func buildReport(conf *config.Configuration, snapshot *records.ProjectSnapshot, includeWBS bool, logger *zap.Logger) output.Report {
	crafts := snapshot.CraftTypeIndex()

	service := forecast.NewService(conf.Estimation, logger)
	laborCalc := labor.NewCalculator(conf.Estimation, logger)
	perDiemCalc := perdiem.NewCalculator(conf.PerDiem, nil, logger)

	result := service.ProjectEAC(snapshot.PurchaseOrders, snapshot.LaborActuals, snapshot.LaborForecasts, crafts)
	revisedContract := snapshot.RevisedContract()

	categories := categoryForecasts(service, snapshot, crafts)

	report := output.Report{
		ProjectName:          snapshot.ProjectName,
		RevisedContract:      revisedContract,
		Forecast:             result,
		VarianceAtCompletion: service.VarianceAtCompletion(revisedContract, result),
		Categories:           categories,
		Labor:                laborCalc.ProjectCosts(snapshot.LaborActuals, snapshot.PerDiemCosts, crafts),
		PerDiem:              perDiemCalc.Summarize(snapshot.PerDiemCosts),
		Warnings:             perDiemCalc.ValidateConfig(snapshot.PerDiem, nil).Warnings,
	}

	if includeWBS {
		nodes, err := wbs.NewGenerator(logger).Generate(snapshot.Disciplines)
		if err != nil {
			// A WBS failure degrades the report rather than aborting it.
			logger.Error("failed to generate WBS tree",
				zap.String("op", "main.buildReport"),
				zap.Error(err),
			)
		} else {
			report.WBS = nodes
		}
	}

	return report
}

// categoryForecasts builds one forecast line per budget category: labor from
// the actuals and forecast rows, everything else from its purchase orders.
func categoryForecasts(service *forecast.Service, snapshot *records.ProjectSnapshot, crafts map[string]records.CraftType) []forecast.CategoryForecast {
	laborBudget := 0.0
	for _, d := range snapshot.Disciplines {
		if d.IsAggregateRow() {
			continue
		}
		laborBudget += d.DirectLabor.Value + d.IndirectLabor.Value + d.AddOns.Total()
	}

	categories := []forecast.CategoryForecast{
		service.LaborCategoryForecast("LABOR", laborBudget, snapshot.LaborActuals, snapshot.LaborForecasts, crafts),
	}

	// Group the purchase orders by their budget category, preserving first
	// appearance order.
	var order []string
	byCategory := make(map[string][]records.PurchaseOrder)
	for _, po := range snapshot.PurchaseOrders {
		category := po.BudgetCategory
		if category == "" {
			category = "UNCATEGORIZED"
		}
		if _, ok := byCategory[category]; !ok {
			order = append(order, category)
		}
		byCategory[category] = append(byCategory[category], po)
	}

	poBudget := budgetByCategory(snapshot.Disciplines)
	for _, category := range order {
		categories = append(categories, service.POCategoryForecast(category, poBudget[category], byCategory[category]))
	}

	return categories
}

// budgetByCategory maps the PO-backed budget categories to the discipline
// budget values that back them.
func budgetByCategory(disciplines []records.BudgetDiscipline) map[string]float64 {
	budget := make(map[string]float64)
	for _, d := range disciplines {
		if d.IsAggregateRow() {
			continue
		}
		budget["MATERIALS"] += d.Materials.Value
		budget["EQUIPMENT"] += d.Equipment.Value
		budget["SUBCONTRACTS"] += d.Subcontracts.Value
	}
	return budget
}

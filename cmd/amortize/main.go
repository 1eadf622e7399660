package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/loan-amortizer/internal/config"
	"github.com/iwvelando/loan-amortizer/internal/logging"
	"github.com/iwvelando/loan-amortizer/pkg/amortization"
	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/iwvelando/loan-amortizer/pkg/output"
	"github.com/iwvelando/loan-amortizer/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to loan configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	viewFlag := flag.String("view", "", "schedule view override: monthly, yearly")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format and view (CLI overrides take precedence over config)
	outputFormat := firstNonEmpty(*outputFormatFlag, conf.Output.Format, constants.OutputFormatPretty)
	view := firstNonEmpty(*viewFlag, conf.Output.View, constants.ViewMonthly)

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}
	if err := validation.ValidateView(view); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	loan, err := conf.ToLoanInput()
	if err != nil {
		logger.Fatal("invalid loan configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	engine := amortization.NewEngine(logger)
	extras := conf.ToExtraPayments()

	var schedule []amortization.PaymentEntry
	if conf.Edit != nil {
		schedule, err = engine.RecalculateFromEdit(loan, extras, conf.Edit.PaymentNumber, conf.Edit.EditAmount())
	} else {
		schedule, err = engine.BuildSchedule(loan, extras)
	}
	if err != nil {
		logger.Fatal("failed to compute amortization schedule",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	summary := amortization.Summarize(loan, schedule)
	logger.Info("amortization schedule computed",
		zap.String("op", "main"),
		zap.String("loan", loan.String()),
		zap.Int("payments", summary.NumberOfPayments),
		zap.String("total_interest", summary.TotalInterest.StringFixed(constants.CurrencyPlaces)),
	)

	if savings, err := engine.CompareToBaseline(loan, schedule); err == nil && savings.PaymentsSaved > 0 {
		logger.Info(fmt.Sprintf("extra payments save %s in interest and %d payments",
			savings.InterestSaved.StringFixed(constants.CurrencyPlaces), savings.PaymentsSaved),
			zap.String("op", "main"),
		)
	}

	// Handle output.
	switch {
	case outputFormat == constants.OutputFormatPretty && view == constants.ViewMonthly:
		output.PrettyFormat(schedule, summary)
	case outputFormat == constants.OutputFormatPretty:
		output.PrettyYearlyFormat(amortization.ToYearlyView(schedule), summary)
	case view == constants.ViewMonthly:
		err = output.CsvFormat(schedule)
	default:
		err = output.CsvYearlyFormat(amortization.ToYearlyView(schedule))
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

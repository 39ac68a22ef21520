package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	appcheckout "zuora-checkout/internal/application/checkout"
	"zuora-checkout/internal/domain/checkout"
	"zuora-checkout/internal/infrastructure/checkoutapi"
	"zuora-checkout/internal/infrastructure/config"
	"zuora-checkout/internal/infrastructure/headless"
	otelinfra "zuora-checkout/internal/infrastructure/observability/otel"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
)

// errPaymentNotCompleted 決済フォームが完了コールバックまで到達しなかった
var errPaymentNotCompleted = errors.New("payment form did not complete")

// runOptions runコマンドのフラグ
type runOptions struct {
	baseURL    string
	method     string
	simulate   string
	paymentID  string
	selector   string
	outputJSON bool
	noColor    bool
}

// runSummary 実行結果
type runSummary struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect,omitempty"`
	Alert    string `json:"alert,omitempty"`
	Error    string `json:"error,omitempty"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "checkout",
		Short:         "Drive the hosted payment form checkout without a browser",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch /config, mount the payment form and complete one payment",
		Long: `Run the checkout bootstrap against a running checkout server.

The configuration is fetched from /config, a payment form is created with the
returned profile and mounted, and the Pay button is pressed once with the given
payment method. The simulated outcome decides whether the form reports success
(redirect to return.html) or failure (alert).`,
		PreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadCheckout()
			if err != nil {
				return err
			}
			if opts.baseURL != "" {
				cfg.BaseURL = opts.baseURL
			}
			return runCheckout(cmd.Context(), cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Checkout server URL (overrides CHECKOUT_BASE_URL)")
	cmd.Flags().StringVar(&opts.method, "method", "creditcard", "Payment method type passed to createPaymentSession")
	cmd.Flags().StringVar(&opts.simulate, "simulate", string(headless.OutcomeSuccess), "Simulated payment outcome (success|fail)")
	cmd.Flags().StringVar(&opts.paymentID, "payment-id", "", "Payment ID reported on success (generated when empty)")
	cmd.Flags().StringVar(&opts.selector, "selector", appcheckout.DefaultMountSelector, "Mount point of the payment form")
	cmd.Flags().BoolVar(&opts.outputJSON, "json", false, "Output the result as JSON")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	return cmd
}

// runCheckout ブートストラップを実行し結果を出力する
func runCheckout(ctx context.Context, cfg *config.DriverConfig, opts *runOptions, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	outcome, err := headless.ParseOutcome(opts.simulate)
	if err != nil {
		return err
	}

	otelShutdown, err := otelinfra.Setup(&cfg.OpenTelemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelShutdown(shutdownCtx)
	}()

	logger := otelinfra.NewLoggerWithWriter(otelinfra.Tracer("checkout-driver"), errOut)
	defer func() { _ = logger.Sync() }()

	navigator, err := headless.NewConsoleNavigator(cfg.BaseURL, io.Discard)
	if err != nil {
		return err
	}

	api := checkoutapi.NewClient(cfg.BaseURL, cfg.Timeout)
	bootstrapper := appcheckout.NewCheckoutBootstrapper(
		api,
		api,
		headless.NewSDKFactory(headless.Options{
			PaymentMethodType: opts.method,
			Outcome:           outcome,
			PaymentID:         opts.paymentID,
		}),
		navigator,
		logger,
		appcheckout.Settings{
			Locale:        cfg.Locale,
			Region:        cfg.Region,
			Currency:      cfg.Currency,
			Amount:        cfg.Amount,
			Customer:      checkout.Customer(cfg.Customer),
			MountSelector: opts.selector,
		},
	)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	summary := summarize(bootstrapper.Initialize(ctx), navigator)
	if err := report(out, summary, opts.outputJSON); err != nil {
		return err
	}
	if !summary.Success {
		return errors.New(summary.Error)
	}
	return nil
}

// summarize 初期化結果とナビゲーターの記録から実行結果をまとめる
func summarize(initErr error, navigator *headless.ConsoleNavigator) runSummary {
	if initErr != nil {
		return runSummary{Error: initErr.Error()}
	}
	if redirects := navigator.Redirects(); len(redirects) > 0 {
		return runSummary{Success: true, Redirect: redirects[len(redirects)-1]}
	}
	if alerts := navigator.Alerts(); len(alerts) > 0 {
		msg := alerts[len(alerts)-1]
		return runSummary{Alert: msg, Error: msg}
	}
	return runSummary{Error: errPaymentNotCompleted.Error()}
}

func report(out io.Writer, summary runSummary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	switch {
	case summary.Success:
		_, err := successColor.Fprintf(out, "✓ Payment complete: %s\n", summary.Redirect)
		return err
	case summary.Alert != "":
		_, err := errorColor.Fprintf(out, "✗ %s\n", summary.Alert)
		return err
	default:
		_, err := warningColor.Fprintf(out, "! Checkout aborted: %s\n", summary.Error)
		return err
	}
}

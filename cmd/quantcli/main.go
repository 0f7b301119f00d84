// quantcli 主程序
// 功能：命令行方式调用各计算器，stdin 读取 JSON 请求，stdout 输出结果 JSON
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	amortizationApp "github.com/wyfcoding/quantcalc/internal/amortization/application"
	realoptionsApp "github.com/wyfcoding/quantcalc/internal/realoptions/application"
	riskmetricsApp "github.com/wyfcoding/quantcalc/internal/riskmetrics/application"
	tradestatsApp "github.com/wyfcoding/quantcalc/internal/tradestats/application"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quantcli",
		Short: "Quantitative calculators: real options, risk metrics, trade stats, amortization",
		Long:  "quantcli reads a JSON request on stdin and writes the calculation result as JSON on stdout.",
	}

	rootCmd.AddCommand(realOptionsCmd())
	rootCmd.AddCommand(riskMetricsCmd())
	rootCmd.AddCommand(tradeStatsCmd())
	rootCmd.AddCommand(amortizationCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliLogger CLI 模式下日志写到 stderr，避免污染 stdout 的结果 JSON
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func readRequest(v any) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse request JSON: %w", err)
	}
	return nil
}

func writeResult(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func realOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "realoptions",
		Short: "Value a real option on a CRR binomial lattice",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req realoptionsApp.ValueOptionCommand
			if err := readRequest(&req); err != nil {
				return err
			}
			service := realoptionsApp.NewValuationService(cliLogger())
			result, err := service.ValueOption(context.Background(), req)
			if err != nil {
				return err
			}
			return writeResult(result)
		},
	}
}

func riskMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "riskmetrics",
		Short: "Calculate VaR / CVaR / max drawdown / Sharpe from a P&L series",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req riskmetricsApp.RiskCommand
			if err := readRequest(&req); err != nil {
				return err
			}
			service := riskmetricsApp.NewRiskService(cliLogger())
			result, err := service.Calculate(context.Background(), req)
			if err != nil {
				return err
			}
			return writeResult(result)
		},
	}
}

func tradeStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tradestats",
		Short: "Calculate win rate / profit factor / expectancy from a trade log",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req tradestatsApp.StatsCommand
			if err := readRequest(&req); err != nil {
				return err
			}
			service := tradestatsApp.NewStatsService(cliLogger())
			result, err := service.Calculate(context.Background(), req)
			if err != nil {
				return err
			}
			return writeResult(result)
		},
	}
}

func amortizationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "amortization",
		Short: "Build a level-payment loan amortization schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req amortizationApp.ScheduleCommand
			if err := readRequest(&req); err != nil {
				return err
			}
			service := amortizationApp.NewScheduleService(cliLogger())
			result, err := service.Build(context.Background(), req)
			if err != nil {
				return err
			}
			return writeResult(result)
		},
	}
}

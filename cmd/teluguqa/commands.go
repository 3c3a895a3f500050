package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appI18n "github.com/chaitu-2303/Q-A/internal/i18n"
	"github.com/chaitu-2303/Q-A/internal/level"
	"github.com/chaitu-2303/Q-A/internal/metrics"
	"github.com/chaitu-2303/Q-A/internal/model"
	"github.com/chaitu-2303/Q-A/internal/pipeline"
	"github.com/chaitu-2303/Q-A/internal/store"
	"github.com/chaitu-2303/Q-A/internal/worker"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [file|-]",
		Short: "Generate Q&A pairs for one paragraph and print them as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGenerate,
	}
	f := cmd.Flags()
	f.StringP("paragraph", "p", "", "Paragraph text (default: read from file argument or stdin)")
	f.IntP("num-questions", "n", 5, "Number of questions")
	addMaxQuestionsFlag(f)
	f.StringP("difficulty", "d", model.DifficultyMixed, "Difficulty (basic, intermediate, advanced, mixed)")
	f.StringP("lang", "l", "en", "Message language (en, te)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	addLogFlags(f)
	return cmd
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <requests.jsonl>",
		Short: "Generate Q&A pairs for every request in a JSON Lines file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	f := cmd.Flags()
	f.IntP("concurrency", "c", runtime.NumCPU(), "Number of concurrent workers")
	addMaxQuestionsFlag(f)
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	addLogFlags(f)
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored generation history as JSON",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.String("db", "teluguqa.db", "SQLite history database path")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	addLogFlags(f)
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective server configuration as YAML",
		RunE:  runConfig,
	}
	addServiceFlags(cmd.Flags())
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	if err := appI18n.Init(v.GetString("lang")); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	paragraph := v.GetString("paragraph")
	if paragraph == "" {
		var err error
		paragraph, err = readInput(cmd, args)
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(paragraph) == "" {
		return errors.New(appI18n.T(cmd.Context(), "ParagraphRequired"))
	}

	n := v.GetInt("num-questions")
	if limit := maxQuestions(v); n > limit {
		return errors.New(appI18n.Td(cmd.Context(), "TooManyQuestions", map[string]any{"Max": limit}))
	}
	pairs, err := pipeline.NewGenerator(slog.Default()).Generate(paragraph, n, v.GetString("difficulty"))
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	resp := model.GenerateResponse{
		Success:        true,
		QAPairs:        pairs,
		TotalQuestions: len(pairs),
		Statistics:     level.Statistics(pairs),
	}
	if err := writeOutput(cmd.OutOrStdout(), v.GetString("output"), func(w io.Writer) error {
		return writeIndentedJSON(w, resp)
	}); err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), appI18n.Tp(cmd.Context(), "QuestionsGenerated", len(pairs)))
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// batchLine is one line of batch output.
type batchLine struct {
	Index int `json:"index"`
	*model.GenerateResponse
	Error string `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	processor := worker.NewBatchProcessor(pipeline.NewGenerator(slog.Default()), v.GetInt("concurrency"), maxQuestions(v))
	results, err := processor.ProcessFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var failed int
	err = writeOutput(cmd.OutOrStdout(), v.GetString("output"), func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		enc := json.NewEncoder(bw)
		for _, r := range results {
			line := batchLine{Index: r.Index, GenerateResponse: r.Response}
			if r.Error != nil {
				failed++
				metrics.BatchJobs.WithLabelValues("error").Inc()
				slog.Error("batch request failed", "index", r.Index, "error", r.Error)
				line.Error = r.Error.Error()
			} else {
				metrics.BatchJobs.WithLabelValues("ok").Inc()
			}
			if err := enc.Encode(line); err != nil {
				return fmt.Errorf("encode result %d: %w", r.Index, err)
			}
		}
		return bw.Flush()
	})
	if err != nil {
		return err
	}

	slog.Info("batch complete", "requests", len(results), "failed", failed)
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	export, err := db.ExportAll(model.ServiceName)
	if err != nil {
		return fmt.Errorf("export history: %w", err)
	}

	if err := writeOutput(cmd.OutOrStdout(), v.GetString("output"), func(w io.Writer) error {
		return writeIndentedJSON(w, export)
	}); err != nil {
		return err
	}
	slog.Info("exported history", "generations", export.Count)
	return nil
}

func runConfig(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	cfg := serviceConfig(viperForCmd(cmd))

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// writeOutput runs write against stdout for "" or "-", otherwise against a new file at path.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeIndentedJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, err = fmt.Fprintln(w)
	return err
}

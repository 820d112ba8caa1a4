package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"story_generator/config"
	"story_generator/export"
	"story_generator/generator"
	"story_generator/logging"
	"story_generator/render"
	"story_generator/server"
	"story_generator/tui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config.yaml")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	interactive := flag.Bool("tui", false, "start the interactive terminal form")
	variant := flag.String("variant", "", "standard or viral (overrides config.defaults.variant)")
	topic := flag.String("topic", "", "story topic (one of the catalogue topics)")
	tone := flag.String("tone", "", "tone of voice (one of the catalogue tones)")
	slides := flag.Int("slides", 0, "number of slides")
	notes := flag.String("notes", "", "free-text style notes")
	plan := flag.Bool("plan", false, "generate a 7-day plan instead of a single story")
	exportFormat := flag.String("export", "", "write the result as txt|json|csv|md|html instead of printing it")
	outDir := flag.String("out", ".", "directory for exported files; - writes to stdout")
	mock := flag.Bool("mock", false, "use the offline mock model")
	verbose := flag.Bool("v", false, "enable info logs")
	flag.Parse()

	config.LoadDotenv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *mock {
		cfg.LLM.Provider = "mock"
	}

	level := cfg.LogLevel
	if !*serve && !*verbose {
		level = "error"
	}
	logging.Setup(level, !*serve)
	if *interactive {
		logging.Silence()
	}

	llm, err := buildLLM(cfg)
	if err != nil {
		fatal(err)
	}
	agent, err := generator.NewAgent(llm)
	if err != nil {
		fatal(err)
	}

	base := cfg.BaseRequest()
	if *variant != "" {
		v, err := generator.ParseVariant(*variant)
		if err != nil {
			fatal(err)
		}
		base.Variant = v
	}
	base.Topic = *topic
	base.Tone = *tone
	base.SlideCount = *slides
	base.StyleNotes = *notes

	// Web server mode
	if *serve {
		srv, err := server.New(agent, base)
		if err != nil {
			fatal(err)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		logx.Infow("starting web server", logx.Field("addr", listen), logx.Field("provider", cfg.LLM.Provider))
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fatal(err)
		}
		return
	}

	sess := generator.NewSession("cli", agent)

	if *interactive {
		if err := tui.Run(tui.NewApp(sess, base, *outDir)); err != nil {
			fatal(err)
		}
		return
	}

	if err := runOnce(sess, base, *plan, *exportFormat, *outDir); err != nil {
		fmt.Fprintln(os.Stderr, render.Error(err, 0))
		os.Exit(1)
	}
}

// runOnce generates a single story or week plan and prints or exports it.
func runOnce(sess *generator.Session, req generator.GenerationRequest, plan bool, format, outDir string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var f export.Format
	if format != "" {
		parsed, err := export.ParseFormat(format)
		if err != nil {
			return err
		}
		f = parsed
	}

	if plan {
		res, err := sess.GenerateWeekPlan(ctx, req)
		if err != nil {
			return err
		}
		if f == "" {
			fmt.Print(render.WeekPlan(res.Plan, 0))
			return nil
		}
		return writeExport(outDir, "ig_week_plan", f, func(w *os.File) error {
			return export.WritePlan(w, f, res.Plan)
		})
	}

	res, err := sess.Generate(ctx, req)
	if err != nil {
		return err
	}
	if f == "" {
		fmt.Print(render.Story(res.Content, res.Request.Variant, 0))
		return nil
	}
	prefix := "ig_story"
	if res.Request.Variant == generator.VariantViral {
		prefix = "viral_ig_story"
	}
	return writeExport(outDir, prefix, f, func(w *os.File) error {
		return export.Write(w, f, res.Content, res.Request.Variant)
	})
}

func writeExport(outDir, prefix string, f export.Format, write func(*os.File) error) error {
	if outDir == "-" {
		return write(os.Stdout)
	}
	path := filepath.Join(outDir, export.FileName(prefix, f, time.Now()))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func buildLLM(cfg *config.Config) (generator.LLMClient, error) {
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(cfg.LLMSettings())
	case "deepseek":
		// OpenAI-compatible endpoint; base_url is mandatory.
		if cfg.LLM.BaseURL == "" {
			return nil, errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(cfg.LLMSettings())
	case "mock":
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

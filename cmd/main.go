package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"qrbanner/internal/adapters/config"
	"qrbanner/internal/api"
	"qrbanner/internal/domain/entity"
	"qrbanner/internal/domain/service"
	"qrbanner/pkg/banner"
	"qrbanner/pkg/logger"
	qr "qrbanner/pkg/qrcode"
)

var version = "v0.3.0"

func main() {
	root := &cobra.Command{
		Use:   "qrbanner",
		Short: "Render QR codes into decorated marketing banners",
	}

	// --- render command ------------------------------------------------------
	var renderReq entity.Request
	var renderConfigPath string
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render one banner to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, renderReq, renderConfigPath)
		},
	}
	renderCmd.Flags().StringVar(&renderReq.URL, "url", "", "URL to encode (required unless the config supplies one)")
	renderCmd.Flags().StringVar(&renderReq.Design, "design", "", "Design id (default card)")
	renderCmd.Flags().StringVar(&renderReq.Output, "output", "", "Output path (default <output-dir>/<design>_qr.png)")
	renderCmd.Flags().StringVar(&renderReq.Title, "title", "", "Title text")
	renderCmd.Flags().StringVar(&renderReq.Subtitle, "subtitle", "", "Subtitle text")
	renderCmd.Flags().StringVar(&renderReq.Footer, "footer", "", "Footer text")
	renderCmd.Flags().StringVarP(&renderConfigPath, "config", "c", "", "Path to config file")
	root.AddCommand(renderCmd)

	// --- batch command -------------------------------------------------------
	var batchConfigPath string
	var batchWorkers int
	batchCmd := &cobra.Command{
		Use:   "batch [manifest.yaml]",
		Short: "Render every entry of a YAML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], batchConfigPath, batchWorkers)
		},
	}
	batchCmd.Flags().StringVarP(&batchConfigPath, "config", "c", "", "Path to config file")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Parallel render workers (default from config)")
	root.AddCommand(batchCmd)

	// --- serve command -------------------------------------------------------
	var serveConfigPath string
	var serveAddr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve banners over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, serveConfigPath, serveAddr)
		},
	}
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to config file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	root.AddCommand(serveCmd)

	// --- designs command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "designs",
		Short: "List the built-in designs",
		Run: func(cmd *cobra.Command, args []string) {
			for _, l := range banner.Designs() {
				fmt.Printf("%-12s %s\n", l.Name, l.Geometry())
			}
		},
	})

	// --- preview command -----------------------------------------------------
	previewCmd := &cobra.Command{
		Use:   "preview [url]",
		Short: "Print a terminal QR code for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := qr.Default
			cfg.Content = args[0]
			text, err := cfg.Text()
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		},
	}
	root.AddCommand(previewCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qrbanner %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(configPath, component string) (*config.Config, *service.RenderService, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	err = logger.Init(logger.Config{
		Debug:     cfg.Logging.Debug,
		LogToFile: cfg.Logging.LogToFile,
		LogsDir:   cfg.Logging.LogsDir,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := logger.Named(component)
	if err != nil {
		return nil, nil, nil, err
	}

	composer := &banner.Composer{FontsDir: cfg.Paths.FontsDir, Log: log.SugaredLogger}
	render := service.NewRenderService(composer, cfg.Paths.OutputDir, log.SugaredLogger)
	return cfg, render, log, nil
}

func runRender(cmd *cobra.Command, req entity.Request, configPath string) error {
	cfg, render, _, err := setup(configPath, "render")
	if err != nil {
		return err
	}

	result, err := render.Render(cfg.Render.Merge(req, cmd.Flags().Changed))
	if err != nil {
		return err
	}

	fmt.Printf("saved %s\n", result.Path)
	return nil
}

func runBatch(cmd *cobra.Command, manifestPath, configPath string, workers int) error {
	cfg, render, log, err := setup(configPath, "batch")
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("workers") {
		workers = cfg.Batch.Workers
	}

	batch := service.NewBatchService(render, workers, log.SugaredLogger)
	return batch.Run(manifestPath)
}

func runServe(cmd *cobra.Command, configPath, addr string) error {
	cfg, render, log, err := setup(configPath, "http")
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("addr") {
		addr = cfg.Addr()
	}

	router := api.NewRouter(&api.Server{
		Render:  render,
		Log:     log.SugaredLogger,
		Version: version,
	})
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Infof("listening on %s", addr)

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Package main 提供 mcaststats 命令行入口
//
// 从配置文件、环境变量与命令行参数组装统计服务，按周期写入静态路由，
// 把统计事件打印到标准输出，并可在 /metrics 暴露 Prometheus 指标。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	mcaststats "github.com/dep2p/go-mcaststats"
	"github.com/dep2p/go-mcaststats/config"
	"github.com/dep2p/go-mcaststats/internal/util/logger"
	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/lib/log"
	"github.com/dep2p/go-mcaststats/pkg/types"
)

var cliLogger = log.Logger("mcaststats/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile  = flag.String("config", "", "配置文件路径（.json / .yaml）")
	preset      = flag.String("preset", "", "预设配置 (default/minimal)")
	routes      = flag.String("routes", "", "静态路由，格式 group[,source]@vlan;...")
	interval    = flag.Duration("interval", 0, "轮询周期（0 = 使用配置）")
	clearPoll   = flag.Bool("clear-before-poll", false, "每轮轮询前清空统计")
	metricsAddr = flag.String("metrics-addr", "", "Prometheus /metrics 监听地址")
	fxDebug     = flag.Bool("fx-debug", false, "输出 Fx 依赖注入日志")
	quiet       = flag.Bool("quiet", false, "不打印统计事件")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	logger.Install(os.Stderr, logger.ConfigFromEnv())

	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	opts := []mcaststats.Option{mcaststats.WithFxDebug(*fxDebug)}
	if *preset != "" {
		opts = append(opts, mcaststats.WithPreset(*preset))
	}
	if !*quiet {
		printer := pkgif.StatisticsListenerFunc(printEvent)
		opts = append(opts, mcaststats.WithListener(&printer))
	}

	svc, err := mcaststats.New(cfg, opts...)
	if err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := svc.Start(startCtx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	if addr := svc.Config().Metrics.ListenAddr; addr != "" && svc.Gatherer() != nil {
		g.Go(func() error {
			return serveMetrics(gctx, addr, svc)
		})
	}

	fmt.Println("组播统计服务已启动，按 Ctrl+C 退出")
	<-gctx.Done()
	fmt.Println("\n正在关闭...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	return multierr.Combine(g.Wait(), svc.Stop(stopCtx))
}

// buildConfig 构建配置
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（MCAST_* 前缀）
//  3. 配置文件
//  4. 默认值
func buildConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if *routes != "" {
		parsed, err := config.ParseStaticRoutes(*routes)
		if err != nil {
			return nil, err
		}
		cfg.Poller.Routes = parsed
		cfg.Poller.Enabled = true
	}
	if *interval > 0 {
		cfg.Poller.Interval = config.Duration(*interval)
	}
	if isFlagSet("clear-before-poll") {
		cfg.Poller.ClearBeforePoll = *clearPoll
	}
	if *metricsAddr != "" {
		cfg.Metrics.ListenAddr = *metricsAddr
		cfg.Metrics.Enabled = true
	}

	return cfg, cfg.Validate()
}

// serveMetrics 提供 /metrics，ctx 取消时关闭
func serveMetrics(ctx context.Context, addr string, svc *mcaststats.Service) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(svc.Gatherer(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			cliLogger.Warn("关闭指标服务失败", "err", err)
		}
	}()

	cliLogger.Info("指标服务已启动", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server %s: %w", addr, err)
	}
	return nil
}

// printEvent 打印统计事件
func printEvent(e types.StatisticsEvent) {
	fmt.Printf("[%s] %s\n", e.Time.Format(time.RFC3339), e)
	for _, rec := range e.Subject {
		fmt.Printf("    %s\n", rec)
	}
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"gopkg.in/yaml.v3"

	"github.com/acronis/go-lrumap/config"
	"github.com/acronis/go-lrumap/internal/workload"
	"github.com/acronis/go-lrumap/log"
	"github.com/acronis/go-lrumap/lrumap"
)

const envVarsPrefix = "LRUMAP"

type reportFormat string

const (
	reportFormatYAML reportFormat = "yaml"
	reportFormatJSON reportFormat = "json"
)

type replayOptions struct {
	configPath string
	tracePath  string
	metricsOut string
	format     string
}

type replayReport struct {
	RunID      string               `json:"runId" yaml:"runId"`
	Policy     lrumap.PolicyKind    `json:"policy" yaml:"policy"`
	MaxSize    uint64               `json:"maxSize" yaml:"maxSize"`
	Result     workload.Result      `json:"result" yaml:"result"`
	Stats      lrumap.StatsSnapshot `json:"stats" yaml:"stats"`
	HitRatio   float64              `json:"hitRatio" yaml:"hitRatio"`
	ElapsedSec float64              `json:"elapsedSec" yaml:"elapsedSec"`
}

func runReplay(opts replayOptions, out io.Writer) error {
	format := reportFormat(strings.ToLower(opts.format))
	if format != reportFormatYAML && format != reportFormatJSON {
		return fmt.Errorf("unknown report format %q, should be one of [yaml json]", opts.format)
	}

	cacheCfg, logCfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLogger := log.NewLogger(logCfg)
	defer closeLogger()

	runID := xid.New().String()
	logger = logger.With(log.String("run_id", runID))

	ops, err := parseTraceFile(opts.tracePath)
	if err != nil {
		logger.Error("failed to parse trace", log.String("trace", opts.tracePath), log.Error(err))
		return err
	}

	promMetrics := lrumap.NewPrometheusMetricsWithOpts(cacheCfg.PrometheusMetricsOpts())
	promMetrics.MustRegister()
	defer promMetrics.Unregister()
	stats := &lrumap.Stats{}

	cache, err := lrumap.NewFromConfig[string, string](cacheCfg, workload.StringWeigher, lrumap.Options{
		MetricsCollector: metricsCollectors{promMetrics, stats},
		Logger:           logger,
	})
	if err != nil {
		logger.Error("failed to create cache", log.Error(err))
		return err
	}

	logger.Info("replay started",
		log.String("policy", string(cache.Policy())),
		log.Uint64("max_size", cache.MaxSize()),
		log.Int("ops", len(ops)),
	)
	startTime := time.Now()
	res := workload.Replay(cache, ops)
	elapsed := time.Since(startTime)

	snapshot := stats.Snapshot()
	logger.Info("replay finished",
		log.Int("ops", res.Ops),
		log.Int("hits", res.Hits),
		log.Int("misses", res.Misses),
		log.Uint64("evictions", snapshot.Evictions),
		log.Int("entries", res.Len),
		log.Uint64("memory", res.Memory),
		log.Duration("elapsed", elapsed),
	)

	if opts.metricsOut != "" {
		if err = prometheus.WriteToTextfile(opts.metricsOut, prometheus.DefaultGatherer); err != nil {
			logger.Error("failed to write metrics", log.String("path", opts.metricsOut), log.Error(err))
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	report := replayReport{
		RunID:      runID,
		Policy:     cache.Policy(),
		MaxSize:    cache.MaxSize(),
		Result:     res,
		Stats:      snapshot,
		HitRatio:   snapshot.HitRatio(),
		ElapsedSec: elapsed.Seconds(),
	}
	return writeReport(out, format, report)
}

func loadConfig(path string) (*lrumap.Config, *log.Config, error) {
	cacheCfg := lrumap.NewConfig()
	logCfg := log.NewConfig()
	if err := config.NewDefaultLoader(envVarsPrefix).LoadFromPath(path, cacheCfg, logCfg); err != nil {
		return nil, nil, err
	}
	return cacheCfg, logCfg, nil
}

func parseTraceFile(path string) ([]workload.Op, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer func() { _ = f.Close() }()
	ops, err := workload.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse trace %s: %w", path, err)
	}
	return ops, nil
}

func writeReport(out io.Writer, format reportFormat, report replayReport) error {
	if format == reportFormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	enc := yaml.NewEncoder(out)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

// metricsCollectors passes cache metrics to several collectors.
type metricsCollectors []lrumap.MetricsCollector

func (mc metricsCollectors) SetAmount(n int) {
	for _, c := range mc {
		c.SetAmount(n)
	}
}

func (mc metricsCollectors) SetWeight(w uint64) {
	for _, c := range mc {
		c.SetWeight(w)
	}
}

func (mc metricsCollectors) IncHits() {
	for _, c := range mc {
		c.IncHits()
	}
}

func (mc metricsCollectors) IncMisses() {
	for _, c := range mc {
		c.IncMisses()
	}
}

func (mc metricsCollectors) AddEvictions(n int) {
	for _, c := range mc {
		c.AddEvictions(n)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dustin/go-humanize"

	"litebak"
)

var version = "dev"

func main() {
	var (
		cfgPath = flag.String("config", "", "path to YAML config file")
		srcPath = flag.String("src", "", "source database file")
		dstPath = flag.String("dst", "", "destination database file")
		srcName = flag.String("src-name", "", "source database name (default main)")
		dstName = flag.String("dst-name", "", "destination database name (default main)")
		pages   = flag.Int("pages-per-step", 0, "source pages copied per step; negative copies everything in one step")
		showVer = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Println("litebak", version)
		return
	}

	cfg := defaultConfig()
	if *cfgPath != "" {
		fileCfg, err := loadConfig(*cfgPath)
		if err != nil {
			log.Fatalf("FATAL: load config: %v", err)
		}
		cfg = cfg.merge(fileCfg)
	}
	cfg = cfg.merge(config{
		Source:          *srcPath,
		Destination:     *dstPath,
		SourceName:      *srcName,
		DestinationName: *dstName,
		PagesPerStep:    *pages,
	})
	if err := cfg.validate(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run(cfg config) error {
	if err := ensureWritableFilesystem(filepath.Dir(cfg.Destination)); err != nil {
		return err
	}

	src, err := litebak.Open(cfg.Source)
	if err != nil {
		return fmt.Errorf("open source %s: %w", cfg.Source, err)
	}
	defer src.Close()
	pageSize, err := src.QueryInt64(`PRAGMA page_size`)
	if err != nil {
		return fmt.Errorf("read source page size: %w", err)
	}

	dst, err := litebak.Open(cfg.Destination)
	if err != nil {
		return fmt.Errorf("open destination %s: %w", cfg.Destination, err)
	}
	defer dst.Close()

	bk, err := litebak.NewBackup(dst, cfg.DestinationName, src, cfg.SourceName)
	if err != nil {
		return fmt.Errorf("initialize backup: %w", err)
	}
	defer bk.Close()

	// Busy and locked are the caller's to retry; fatal step errors abort.
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = time.Minute

	start := time.Now()
	for {
		status, err := bk.Step(cfg.PagesPerStep)
		if err != nil {
			return fmt.Errorf("backup step: %w", err)
		}
		switch {
		case status == litebak.StatusDone:
			copied := bk.PageCount()
			log.Printf("INFO: backup complete: %d pages (%s) in %s",
				copied, humanize.IBytes(uint64(int64(copied)*pageSize)), time.Since(start).Round(time.Millisecond))
			return nil
		case status.Retryable():
			wait := policy.NextBackOff()
			if wait == backoff.Stop {
				return fmt.Errorf("gave up after %s: last status %s", policy.MaxElapsedTime, status)
			}
			log.Printf("WARN: %s, retrying in %s", describeStatus(status), wait.Round(time.Millisecond))
			time.Sleep(wait)
		default:
			policy.Reset()
			copied := bk.PageCount() - bk.Remaining()
			log.Printf("INFO: copied %d/%d pages (%s)",
				copied, bk.PageCount(), humanize.IBytes(uint64(int64(copied)*pageSize)))
		}
	}
}

func describeStatus(s litebak.Status) string {
	switch s {
	case litebak.StatusBusy:
		return "destination is locked by another connection"
	case litebak.StatusLocked:
		return "a source table is locked by another connection"
	}
	return s.String()
}

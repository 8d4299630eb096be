package main

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nsresolve/rrcache"
)

type options struct {
	logLevel   uint32
	configFile string
}

func main() {
	var opt options
	root := &cobra.Command{
		Use:   "rrcachectl",
		Short: "DNS RRSet cache harness",
		Long: `rrcachectl exercises the RRSet cache directly, without a
network listener: serve runs a synthetic insert/lookup feed against a
Facade built from a config file, dump prints the entries a running
cache would hold after that feed.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().Uint32VarP(&opt.logLevel, "log-level", "l", 4, "log level; 0=None .. 6=Trace")
	root.PersistentFlags().StringVarP(&opt.configFile, "config", "c", "", "path to a TOML config file")

	root.AddCommand(newServeCmd(&opt))
	root.AddCommand(newDumpCmd(&opt))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildService(ctx context.Context, opt *options) (rrcache.Service, error) {
	cfg := rrcache.Config{MaxCacheSize: 10000, QueueCapacity: 64}
	if opt.configFile != "" {
		loaded, err := rrcache.LoadConfig(opt.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return rrcache.NewFromConfig(ctx, cfg, rrcache.RealTimeSource{})
}

func newServeCmd(opt *options) *cobra.Command {
	var feedInterval time.Duration
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a synthetic insert feed against the cache until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetLevel(logrus.Level(opt.logLevel))
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			f, err := buildService(ctx, opt)
			if err != nil {
				return err
			}
			defer f.Shutdown(context.Background()) //nolint:errcheck

			t := time.NewTicker(feedInterval)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					insertSyntheticEntry(f)
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
	cmd.Flags().DurationVar(&feedInterval, "feed-interval", time.Second, "interval between synthetic inserts")
	return cmd
}

func newDumpCmd(opt *options) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Insert a batch of synthetic entries then print the resulting cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetLevel(logrus.Level(opt.logLevel))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			f, err := buildService(ctx, opt)
			if err != nil {
				return err
			}
			defer f.Shutdown(context.Background()) //nolint:errcheck

			for i := 0; i < count; i++ {
				insertSyntheticEntry(f)
			}
			time.Sleep(10 * time.Millisecond) // let the update worker drain

			for _, e := range f.Snapshot() {
				fmt.Printf("%s\teol=%d\trank=%s\n", e.Key.String(), e.Eol, e.Val.Rank)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of synthetic entries to insert")
	return cmd
}

// insertSyntheticEntry feeds a single made-up A record into f, standing
// in for whatever resolver would populate the cache in a full deployment.
func insertSyntheticEntry(f rrcache.Service) {
	key := rrcache.Key{Name: fmt.Sprintf("host%d.example.com.", rand.Intn(100)), Type: dns.TypeA, Class: dns.ClassINET}
	crs := rrcache.CRSet{Tag: rrcache.TagA, A: []net.IP{net.IPv4(127, 0, 0, byte(rand.Intn(256)))}}
	f.Insert(key, 60, crs, rrcache.Answer)
}

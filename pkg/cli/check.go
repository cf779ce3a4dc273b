package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/bvmc/bvmc/pkg/bmc"
	"github.com/bvmc/bvmc/pkg/btor"
	"github.com/bvmc/bvmc/pkg/config"
	"github.com/bvmc/bvmc/pkg/lib/server"
	"github.com/bvmc/bvmc/pkg/lib/signals"
	"github.com/bvmc/bvmc/pkg/metrics"
)

type checkOptions struct {
	configPath   string
	kmin         int
	kmax         int
	stopAtFirst  bool
	traceGen     bool
	outputBase   string
	parallelism  int
	debug        bool
	traceQueries bool
	metricsAddr  string
	profiling    bool
	witness      bool
	model        bool
	dump         bool
	aiger        string
	aigerBinary  bool
}

func newCheckCmd() *cobra.Command {
	o := checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [flags] FILE...",
		Short: "Search BTOR2 models for reachable bad states",
		Long: `Check unrolls each model up to the maximum bound and reports, for every
bad state property, the smallest bound at which it is reachable.

  $ bvmc check --kmax 30 --witness counter.btor
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config(cmd.Flags())
			if err != nil {
				return err
			}
			if o.aiger != "" && len(args) > 1 {
				return errors.New("--aiger requires a single model")
			}

			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			if cfg.Debug {
				logger.SetLevel(logrus.DebugLevel)
			}
			logger.Debugf("log level %s", logger.Level)

			ctx, cancel := signals.Context(cmd.Context())
			defer cancel()

			return o.run(ctx, logger, cfg, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "path to a YAML file with check settings")
	cmd.Flags().IntVar(&o.kmin, "kmin", 0, "first bound to check")
	cmd.Flags().IntVar(&o.kmax, "kmax", config.DefaultKmax, "last bound to check")
	cmd.Flags().BoolVar(&o.stopAtFirst, "stop-at-first", true, "stop at the first bound at which any property is reached")
	cmd.Flags().BoolVar(&o.traceGen, "trace-gen", false, "keep the translation of internal terms for every frame")
	cmd.Flags().StringVar(&o.outputBase, "output-base", bmc.Bin.String(), "number format of model values: bin, hex or dec")
	cmd.Flags().IntVarP(&o.parallelism, "parallelism", "j", config.DefaultParallelism, "number of models checked at once")
	cmd.Flags().BoolVar(&o.debug, "debug", false, "use debug log level")
	cmd.Flags().BoolVar(&o.traceQueries, "trace-queries", false, "print every satisfiability query")
	cmd.Flags().StringVar(&o.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while checking")
	cmd.Flags().BoolVar(&o.profiling, "profiling", false, "serve pprof endpoints next to the metrics")
	cmd.Flags().BoolVar(&o.witness, "witness", false, "print a BTOR2 witness for reached properties")
	cmd.Flags().BoolVar(&o.model, "model", false, "print latch and input values of the counterexample")
	cmd.Flags().BoolVar(&o.dump, "dump", false, "print the unrolled frames (implies --trace-gen)")
	cmd.Flags().StringVar(&o.aiger, "aiger", "", "write the model as an AIGER circuit to this file")
	cmd.Flags().BoolVar(&o.aigerBinary, "aiger-binary", false, "write binary instead of ASCII AIGER")

	return cmd
}

// config merges the file settings with the flags set on the command
// line; flags win.
func (o *checkOptions) config(flags *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("kmin") {
		cfg.Kmin = o.kmin
	}
	if flags.Changed("kmax") {
		cfg.Kmax = o.kmax
	}
	if flags.Changed("stop-at-first") {
		cfg.StopAtFirst = o.stopAtFirst
	}
	if flags.Changed("trace-gen") || o.dump {
		cfg.TraceGen = o.traceGen || o.dump
	}
	if flags.Changed("output-base") {
		cfg.OutputBase = o.outputBase
	}
	if flags.Changed("parallelism") {
		cfg.Parallelism = o.parallelism
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}
	return cfg, cfg.Validate()
}

func (o *checkOptions) run(ctx context.Context, logger *logrus.Logger, cfg config.Config, paths []string, out io.Writer) error {
	metrics.Register()
	if o.metricsAddr != "" {
		s, err := server.Listen(o.metricsAddr, server.WithLogger(logger), server.WithProfiling(o.profiling))
		if err != nil {
			return errors.Wrap(err, "metrics endpoint")
		}
		serveCtx, stop := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- s.Serve(serveCtx) }()
		defer func() {
			stop()
			if err := <-done; err != nil {
				logger.WithError(err).Warn("metrics endpoint")
			}
		}()
	}

	reports := make([]bytes.Buffer, len(paths))
	errs := make([]error, len(paths))
	var g errgroup.Group
	g.SetLimit(cfg.Parallelism)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			errs[i] = o.check(ctx, logger.WithField("model", path), cfg, path, &reports[i])
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, path := range paths {
		if _, err := reports[i].WriteTo(out); err != nil {
			return err
		}
		if errs[i] != nil {
			failed++
			logger.WithError(errs[i]).WithField("model", path).Error("check failed")
		}
	}
	if failed == 1 && len(paths) == 1 {
		return errs[0]
	}
	if failed > 0 {
		return errors.Errorf("%d of %d models failed", failed, len(paths))
	}
	return nil
}

func (o *checkOptions) check(ctx context.Context, log logrus.FieldLogger, cfg config.Config, path string, out io.Writer) error {
	options := append(cfg.Options(), bmc.WithLogger(log))
	if o.traceQueries {
		options = append(options, bmc.WithTracer(bmc.LoggingTracer{Writer: out}))
	}
	e, err := bmc.New(options...)
	if err != nil {
		return err
	}
	defer e.Close()

	m, err := btor.ParseFile(path, e)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"states":     len(m.States),
		"inputs":     len(m.Inputs),
		"properties": len(m.Bad),
	}).Debug("model parsed")

	if o.aiger != "" {
		if err := writeAiger(e, o.aiger, o.aigerBinary); err != nil {
			return err
		}
	}

	start := time.Now()
	found, err := e.Search(ctx, cfg.Kmin, cfg.Kmax)
	if err != nil {
		return err
	}
	log.WithField("duration", time.Since(start)).Debug("search finished")

	checked := cfg.Kmax
	if found != bmc.NotFound && cfg.StopAtFirst {
		checked = found
	}
	fmt.Fprintf(out, "%s\n", path)
	for _, p := range m.Bad {
		k, err := e.ReachedAt(p.Index)
		if err != nil {
			return err
		}
		if k == bmc.NotReached {
			fmt.Fprintf(out, "  %s: not reached in [%d, %d]\n", p.Label(), cfg.Kmin, checked)
			continue
		}
		fmt.Fprintf(out, "  %s: reached at bound %d\n", p.Label(), k)
	}

	if found != bmc.NotFound {
		if o.model {
			if err := printModel(out, e, cfg.Base()); err != nil {
				return err
			}
		}
		if o.witness {
			if err := bmc.WriteWitness(out, e); err != nil {
				return err
			}
		}
	}
	if o.dump {
		return e.Dump(out)
	}
	return nil
}

func printModel(out io.Writer, e *bmc.Engine, base bmc.Base) error {
	vars := append(e.Latches(), e.Inputs()...)
	for k := 0; k <= e.ModelBound(); k++ {
		for _, v := range vars {
			a, err := e.Assignment(v, k)
			if err != nil {
				return err
			}
			name := a.Name
			if name == "" {
				name = fmt.Sprintf("#%d", a.Term)
			}
			fmt.Fprintf(out, "  %s@%d = %s\n", name, k, a.Format(base))
			if err := e.ReleaseAssignment(a); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeAiger(e *bmc.Engine, path string, binary bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.WriteAiger(f, binary); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}

package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vcfkit/internal/duckdb"
	"github.com/inodb/vcfkit/internal/output"
	"github.com/inodb/vcfkit/internal/vcf"
)

// open loads a VCF file with the configured worker count and logger.
func (a *app) open(path string) (*vcf.File, error) {
	f, err := vcf.Open(path,
		vcf.WithLogger(a.logger),
		vcf.WithWorkers(viper.GetInt(keyWorkers)))
	if err != nil {
		return nil, err
	}
	a.logger.Info("loaded vcf",
		zap.String("path", path),
		zap.Int("records", f.Records().Len()),
		zap.Int("null_cells", len(f.Warnings())))
	return f, nil
}

func newHeaderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "header <vcf>",
		Short: "Print header metadata as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			return output.WriteHeaderYAML(cmd.OutOrStdout(), f.Header())
		},
	}
}

func newChromsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chroms <vcf>",
		Short: "List the distinct chromosomes of the records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			chroms := f.ListChromosomes()
			sort.Strings(chroms)
			for _, c := range chroms {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newQueryCmd(a *app) *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "query <vcf>",
		Short: "Print records matching every given filter",
		Long: `Print the records matching all of the given filters, tab-delimited under
the file's column header. Without filters every record is printed.

Chromosomes given as numbers match the integer CHROM value ("1" matches "01");
other names (X, Y, MT) match the CHROM text exactly.`,
		Example: `  vcfkit query sample.vcf --chrom 1 --pos 10000
  vcfkit query sample.vcf --chrom 2 --start 5000 --end 9000
  vcfkit query sample.vcf --status FAIL --snps
  vcfkit query sample.vcf --micro --min-qual 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.minQualSet = cmd.Flags().Changed("min-qual")
			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			t, err := applyQuery(f, opts)
			if err != nil {
				return err
			}
			w := output.NewTabWriter(cmd.OutOrStdout())
			if err := w.WriteTable(t); err != nil {
				return err
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringSliceVar(&opts.chroms, "chrom", nil, "Chromosome(s) to keep (repeatable or comma-separated)")
	cmd.Flags().StringVar(&opts.pos, "pos", "", "Exact position (requires a single --chrom)")
	cmd.Flags().StringVar(&opts.start, "start", "", "Range bound, inclusive (requires a single --chrom and --end)")
	cmd.Flags().StringVar(&opts.end, "end", "", "Range bound, inclusive (requires a single --chrom and --start)")
	cmd.Flags().StringVar(&opts.status, "status", "", "FILTER status: PASS or FAIL")
	cmd.Flags().BoolVar(&opts.snps, "snps", false, "Only records with a single-base REF")
	cmd.Flags().BoolVar(&opts.micro, "micro", false, "Only records whose ID starts with \"micro\"")
	cmd.Flags().Float64Var(&opts.minQual, "min-qual", 0, "Only records with numeric QUAL at least this value")

	return cmd
}

func newContigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contig <vcf> <id>",
		Short: "Show a ##contig declaration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return &usageError{msg: fmt.Sprintf("contig id %q is not an integer", args[1])}
			}
			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			c, ok := f.GetContigInfo(id)
			if !ok {
				return fmt.Errorf("contig %d not declared", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id\t%d\n", c.ID)
			if c.Species != nil {
				fmt.Fprintf(out, "species\t%s\n", *c.Species)
			}
			if c.Length != nil {
				fmt.Fprintf(out, "length\t%d\n", *c.Length)
			}
			if c.Assembly != nil {
				fmt.Fprintf(out, "assembly\t%s\n", *c.Assembly)
			}
			if c.Taxonomy != nil {
				fmt.Fprintf(out, "taxonomy\t%s\n", *c.Taxonomy)
			}
			return nil
		},
	}
}

func newKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <abbreviation>",
		Short: "Describe a well-known INFO or FORMAT key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := vcf.LookupKeyDescription(args[0])
			if !ok {
				return fmt.Errorf("unknown key %q (see 'vcfkit keys')", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s : %s\n", d.Key, d.Description)
			return nil
		},
	}
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List well-known INFO and FORMAT keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := output.NewTabWriter(cmd.OutOrStdout())
			if err := w.WriteKeys(vcf.WellKnownKeys()); err != nil {
				return err
			}
			return w.Flush()
		},
	}
}

func newIndexCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "index <vcf>...",
		Short: "Store records in the DuckDB index",
		Long:  "Load each file and store its records in the DuckDB index (index.path). Unchanged files are skipped.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := duckdb.Open(configString(keyIndexPath))
			if err != nil {
				return err
			}
			defer store.Close()

			for _, path := range args {
				fp, err := duckdb.StatFile(path)
				if err != nil {
					return fmt.Errorf("stat %s: %w", path, err)
				}
				if !force {
					indexed, err := store.IsIndexed(fp)
					if err != nil {
						return err
					}
					if indexed {
						a.logger.Info("already indexed", zap.String("path", fp.Path))
						continue
					}
				}
				f, err := a.open(path)
				if err != nil {
					return err
				}
				if err := store.WriteTable(fp, f.Records()); err != nil {
					return fmt.Errorf("index %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d records from %s\n", f.Records().Len(), fp.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Re-index files even if unchanged")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		chrom, status string
		start, end    int64
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Query the DuckDB index",
		Example: `  vcfkit search --chrom 1 --start 10000 --end 20000
  vcfkit search --status FAIL`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (chrom == "") == (status == "") {
				return &usageError{msg: "give either --chrom (with --start/--end) or --status"}
			}
			store, err := duckdb.Open(configString(keyIndexPath))
			if err != nil {
				return err
			}
			defer store.Close()

			var recs []duckdb.Record
			if chrom != "" {
				recs, err = store.QueryRange(chrom, start, end)
			} else {
				var mode vcf.FilterMode
				if mode, err = vcf.ParseFilterMode(status); err == nil {
					recs, err = store.QueryFilterStatus(mode)
				}
			}
			if err != nil {
				return err
			}
			a.logger.Debug("index search", zap.Int("records", len(recs)))

			w := output.NewTabWriter(cmd.OutOrStdout())
			if err := w.WriteRecords(recs); err != nil {
				return err
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&chrom, "chrom", "", "Chromosome")
	cmd.Flags().Int64Var(&start, "start", 0, "Range bound, inclusive")
	cmd.Flags().Int64Var(&end, "end", 1<<62, "Range bound, inclusive")
	cmd.Flags().StringVar(&status, "status", "", "FILTER status: PASS or FAIL")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shapestone/byteeval/internal/eval"
	"github.com/shapestone/byteeval/internal/obslog"
	"github.com/shapestone/byteeval/pkg/decoder"
	"github.com/shapestone/byteeval/pkg/matchset"
	"github.com/shapestone/byteeval/pkg/operator"
	"github.com/shapestone/byteeval/pkg/provider"
	"github.com/shapestone/byteeval/pkg/scratch"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Split whitespace-delimited alphanumeric tokens from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

var whitespaceRun = operator.Seq(&operator.SequenceOperator[[]byte]{
	Match:       matchset.While(matchset.WhiteSpace),
	Identity:    matchset.IdentityBytes,
	ScratchHint: scratch.DynamicHint(),
})

var alnumToken = operator.Seq(&operator.SequenceOperator[[]byte]{
	Match:       matchset.While(matchset.AlphaNumeric),
	Identity:    matchset.IdentityBytes,
	ScratchHint: scratch.DynamicHint(),
})

func runTokenize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log, err := obslog.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	scratch.SetDefaultCapacityHint(cfg.ScratchCapacityHint)
	eval.SetDefaultAlignment(cfg.DefaultAlignment)

	src := io.Reader(os.Stdin)
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	p := provider.NewReader(src, cfg.ReaderWindowSize, cfg.ReaderChunkSize, log)
	dec := decoder.New(p)

	count := 0
	for {
		if _, err := decoder.DropMatch(dec, whitespaceRun); err != nil {
			if errors.Is(err, provider.ErrEndOfStream) {
				break
			}
			return err
		}

		tok, err := decoder.Take(dec, alnumToken)
		if err != nil {
			if errors.Is(err, provider.ErrEndOfStream) {
				break
			}
			return err
		}
		if tok.IsFail() {
			// Not whitespace and not alphanumeric: skip one byte to make
			// progress and keep going.
			if err := dec.Skip(1); err != nil {
				if errors.Is(err, provider.ErrEndOfStream) {
					break
				}
				return err
			}
			continue
		}

		count++
		st := tok.State()
		log.Debug("token",
			zap.Int("index", count),
			zap.Int("used", st.Used),
			zap.Bool("owned", st.Owned),
			zap.ByteString("value", st.Value),
		)
		fmt.Printf("%d: %q\n", count, st.Value)
	}

	log.Info("tokenize complete", zap.Int("tokens", count), zap.Int("bytes", dec.Position()))
	return nil
}

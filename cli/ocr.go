package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wudi/pdfdeck/observability"
	"github.com/wudi/pdfdeck/ocr"
)

func (a *App) newOCRCmd() *cobra.Command {
	var (
		langs []string
		psm   int
		dpi   int
	)
	cmd := &cobra.Command{
		Use:   "ocr <in.pdf>",
		Short: "Recognize text in the document's page images",
		Long: `OCR extracts the images embedded in the document, normalizes them to a
format the engine accepts, and prints the recognized text per image. The
engine is Tesseract; --lang selects trained data, --psm the page
segmentation mode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := ocr.DefaultEngine()
			if engine == nil {
				return fmt.Errorf("ocr: no engine registered")
			}
			start := time.Now()
			defer func() {
				if a.metrics != nil {
					a.metrics.Observe(observability.MetricOCRTime, time.Since(start))
				}
			}()

			in := args[0]
			scratch, err := os.MkdirTemp("", "pdfdeck-ocr-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(scratch)

			images, err := a.processor().ExtractPageImages(cmd.Context(), in, scratch)
			if err != nil {
				return err
			}
			if len(images) == 0 {
				return fmt.Errorf("ocr: %s contains no images", in)
			}

			opts := []ocr.InputOption{}
			if len(langs) > 0 {
				opts = append(opts, ocr.WithLanguages(langs...))
			}
			if psm >= 0 {
				opts = append(opts, ocr.WithTesseractPSM(psm))
			}
			if dpi > 0 {
				opts = append(opts, ocr.WithDPI(dpi))
			}
			inputs := make([]ocr.Input, 0, len(images))
			for _, img := range images {
				input, err := ocr.InputFromFile(img, opts...)
				if err != nil {
					return fmt.Errorf("ocr: %w", err)
				}
				inputs = append(inputs, input)
			}

			results, err := recognizeAll(cmd, engine, inputs)
			if err != nil {
				return fmt.Errorf("ocr: %w", err)
			}
			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(a.Stdout)
				}
				if inputs[i].PageIndex >= 0 {
					fmt.Fprintf(a.Stdout, "== page %d (%s)\n", inputs[i].PageIndex+1, res.InputID)
				} else {
					fmt.Fprintf(a.Stdout, "== %s\n", res.InputID)
				}
				fmt.Fprintln(a.Stdout, res.PlainText)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&langs, "lang", nil, "language hints for the engine (e.g. eng,deu)")
	cmd.Flags().IntVar(&psm, "psm", -1, "Tesseract page segmentation mode")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "assumed DPI for the extracted images")
	return cmd
}

func recognizeAll(cmd *cobra.Command, engine ocr.Engine, inputs []ocr.Input) ([]ocr.Result, error) {
	if batch, ok := engine.(ocr.BatchEngine); ok {
		return batch.RecognizeBatch(cmd.Context(), inputs)
	}
	results := make([]ocr.Result, 0, len(inputs))
	for _, in := range inputs {
		res, err := engine.Recognize(cmd.Context(), in)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

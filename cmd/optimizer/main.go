package main

import (
	"context"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tavolo/internal/caption"
	"tavolo/internal/optimize"
	"tavolo/internal/seoname"
)

var (
	flagDir      string
	flagOut      string
	flagCategory string
	flagBrand    string
	flagCaption  bool
	flagLang     string
)

func main() {
	root := &cobra.Command{
		Use:   "optimizer",
		Short: "Batch-optimize restaurant images and rename them for SEO",
		Long: `Reads every image in --dir, re-encodes it to webp under the
general web profile, renames it with an SEO-friendly filename and
writes a CSV manifest next to the output. With --caption each image
is also sent for AI captioning; caption failures are logged and the
image is still processed.`,
		RunE: run,
	}

	root.Flags().StringVar(&flagDir, "dir", ".", "input directory of images")
	root.Flags().StringVar(&flagOut, "out", "optimized", "output directory")
	root.Flags().StringVar(&flagCategory, "category", "gallery", "image category (popular-dishes, gallery, deals, menu)")
	root.Flags().StringVar(&flagBrand, "brand", seoname.DefaultBrand, "brand slug used in filenames")
	root.Flags().BoolVar(&flagCaption, "caption", false, "request AI captions for each image")
	root.Flags().StringVar(&flagLang, "lang", "en", "caption language (en, fr)")

	root.AddCommand(&cobra.Command{
		Use:   "categories [category...]",
		Short: "Show example SEO slugs per image category",
		Run: func(cmd *cobra.Command, args []string) {
			cats := args
			if len(cats) == 0 {
				cats = []string{"popular-dishes", "gallery", "deals", "menu"}
			}
			for _, cat := range cats {
				fmt.Printf("%s:\n", cat)
				for _, slug := range seoname.CategorySuggestions(cat) {
					fmt.Printf("  %s\n", slug)
				}
			}
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

type manifestRow struct {
	Original    string
	Optimized   string
	DishName    string
	Description string
	Category    string
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	entries, err := os.ReadDir(flagDir)
	if err != nil {
		return fmt.Errorf("cannot read input directory: %w", err)
	}

	if err := os.MkdirAll(flagOut, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	var captioner caption.Client
	if flagCaption {
		captioner = caption.NewGeminiClient()
	}

	var rows []manifestRow
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		src := filepath.Join(flagDir, entry.Name())
		data, err := os.ReadFile(src)
		if err != nil {
			log.Printf("skip %s: %v", entry.Name(), err)
			continue
		}

		blob := optimize.File{Name: entry.Name(), Data: data}
		if !blob.IsImage() {
			continue
		}

		optimized := optimize.Normalize(blob, optimize.ProfileGeneral)

		itemName := baseName(entry.Name())
		var result *caption.Result
		if captioner != nil {
			result, err = captioner.Caption(
				context.Background(),
				base64.StdEncoding.EncodeToString(optimized.Data),
				flagCategory,
				flagLang,
			)
			if err != nil {
				log.Printf("caption failed for %s, continuing: %v", entry.Name(), err)
			} else if result.DishName != "" {
				itemName = result.DishName
			}
		}

		outName := seoname.BuildSEOFilename(itemName, flagCategory, flagBrand)
		dst := uniquePath(flagOut, outName)
		if err := os.WriteFile(dst, optimized.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}

		row := manifestRow{
			Original:  entry.Name(),
			Optimized: filepath.Base(dst),
			Category:  flagCategory,
		}
		if result != nil {
			row.DishName = result.DishName
			row.Description = result.Description
			if result.SuggestedCategory != "" {
				row.Category = result.SuggestedCategory
			}
		}
		rows = append(rows, row)

		log.Printf("✅ %s -> %s", entry.Name(), filepath.Base(dst))
	}

	if len(rows) == 0 {
		log.Println("no images found, nothing to do")
		return nil
	}

	manifest := filepath.Join(
		flagOut,
		fmt.Sprintf("%s-image-manifest-%s.csv", flagBrand, time.Now().Format("2006-01-02")),
	)
	if err := writeManifest(manifest, rows); err != nil {
		return err
	}

	log.Printf("✅ %d images optimized, manifest at %s", len(rows), manifest)
	return nil
}

// baseName strips the extension so "Poutine Buffalo.JPG" becomes
// "Poutine Buffalo" before SEO sanitization.
func baseName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// uniquePath appends -2, -3, ... before the extension when two inputs
// collapse to the same SEO name.
func uniquePath(dir, name string) string {
	candidate := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 2; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, i, ext))
	}
}

func writeManifest(path string, rows []manifestRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"original", "optimized", "dish_name", "description", "category"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Original, r.Optimized, r.DishName, r.Description, r.Category}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

package cmd

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand for the dupecull
// CLI. It generates a test tree with a controlled duplicate ratio.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		dupPercent int
		maxDepth   int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a test tree with duplicate files",
		Long: `Generate a directory tree of small text files for exercising scans.

Files are spread across randomly nested directories up to --depth
levels below the output root. Each file holds a single UUID line;
--dup-percent of the files repeat the content of an earlier one, so a
scan of the tree finds a predictable amount of duplication.`,
		Run: func(cmd *cobra.Command, args []string) {
			runSeed(outputPath, fileCount, dupPercent, maxDepth, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 1000, "Number of files to generate")
	cmd.Flags().IntVar(&dupPercent, "dup-percent", 30, "Percentage of files duplicating an earlier one")
	cmd.Flags().IntVar(&maxDepth, "depth", 4, "Maximum directory nesting below the output root")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(outputPath string, fileCount, dupPercent, maxDepth int, verbose bool) {
	if fileCount < 1 {
		log.Fatalf("count must be positive, got %d", fileCount)
	}
	if dupPercent < 0 || dupPercent > 100 {
		log.Fatalf("dup-percent must be between 0 and 100, got %d", dupPercent)
	}
	if maxDepth < 0 {
		log.Fatalf("depth cannot be negative, got %d", maxDepth)
	}

	if verbose {
		fmt.Printf("Generating %d files in %s (%d%% duplicates)\n", fileCount, outputPath, dupPercent)
	}

	if err := os.MkdirAll(outputPath, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Unique contents are written first; the remaining files reuse a
	// random entry from the pool, giving exactly the requested split.
	dupCount := fileCount * dupPercent / 100
	uniqueCount := fileCount - dupCount
	if uniqueCount < 1 {
		uniqueCount = 1
	}

	pool := make([]string, 0, uniqueCount)
	filesCreated := 0

	for filesCreated < fileCount {
		fresh := len(pool) < uniqueCount
		var content string
		if fresh {
			content = uuid.New().String() + "\n"
		} else {
			idx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
			content = pool[idx.Int64()]
		}

		// Pick a random nesting level and a directory at that level.
		// Name collisions are fine, they just reuse the directory.
		dirPath := outputPath
		if maxDepth > 0 {
			levels, _ := rand.Int(rand.Reader, big.NewInt(int64(maxDepth)+1))
			for i := int64(0); i < levels.Int64(); i++ {
				name, _ := rand.Int(rand.Reader, big.NewInt(8))
				dirPath = filepath.Join(dirPath, fmt.Sprintf("d%d", name.Int64()))
			}
		}
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			log.Printf("Warning: Failed to create directory %s: %v", dirPath, err)
			continue
		}

		// Generate random filename (lowercase hex)
		filenameNum, _ := rand.Int(rand.Reader, big.NewInt(0xFFFFFFFF))
		extRand, _ := rand.Int(rand.Reader, big.NewInt(2))
		ext := ".txt"
		if extRand.Int64() == 1 {
			ext = ".dat"
		}
		filePath := filepath.Join(dirPath, fmt.Sprintf("%08x%s", filenameNum.Int64(), ext))

		// Skip if file already exists
		if _, err := os.Stat(filePath); err == nil {
			continue
		}

		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			log.Printf("Warning: Failed to write file %s: %v", filePath, err)
			continue
		}

		if fresh {
			pool = append(pool, content)
		}
		filesCreated++

		if verbose && filesCreated%1000 == 0 {
			fmt.Printf("Created %d/%d files...\n", filesCreated, fileCount)
		}
	}

	if verbose {
		fmt.Printf("Successfully created %d files (%d unique contents)\n", filesCreated, len(pool))
	}
}

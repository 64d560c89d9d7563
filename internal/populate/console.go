package populate

import (
	"fmt"
	"strings"
)

func (p *Pipeline) banner() {
	title := "Image Integration"
	if p.Mode == ModeFetch {
		title = "Image Downloader"
	}
	fmt.Fprintf(p.Out, "🧩 Jigsaw Puzzle Pro - %s\n", title)
	fmt.Fprintln(p.Out, strings.Repeat("=", 60))
	fmt.Fprintln(p.Out)
}

func (p *Pipeline) printInstructions() {
	w := p.Out
	fmt.Fprintln(w, "📸 Next Steps:")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintln(w)
	if p.Mode == ModeFetch {
		fmt.Fprintln(w, "✅ Fetched images have been saved where providers returned results")
		fmt.Fprintln(w, "   Run `puzzleassets verify` to list manifest entries without a file")
	} else {
		fmt.Fprintln(w, "✅ Sample images have been created for testing")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "To add real royalty-free images:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Option 1: Unsplash (Recommended)")
	fmt.Fprintln(w, "  - Visit: https://unsplash.com/developers")
	fmt.Fprintln(w, "  - Get free API key")
	fmt.Fprintln(w, "  - Set UNSPLASH_ACCESS_KEY in .env")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Option 2: Pexels / Pixabay")
	fmt.Fprintln(w, "  - Visit: https://www.pexels.com/api/ or https://pixabay.com/api/docs/")
	fmt.Fprintln(w, "  - Get free API key")
	fmt.Fprintln(w, "  - Set PEXELS_API_KEY or PIXABAY_API_KEY in .env")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Option 3: Manual Download")
	fmt.Fprintln(w, "  - Download images from Unsplash/Pexels")
	fmt.Fprintf(w, "  - Save to: %s/{category}/\n", p.Root)
	fmt.Fprintf(w, "  - Update %s with image metadata\n", ManifestName)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Image directories created:")
	for _, c := range p.Categories {
		fmt.Fprintf(w, "  - %s/%s/\n", p.Root, c.Name)
	}
}

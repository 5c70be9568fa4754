package dataprocessing

import (
	"strings"

	"epspulse/pkg/contracts/domain"
)

// SplitBlocks scans the header row left to right and groups columns into
// per-company blocks. A non-blank header at index i starts a block covering
// columns [i, i+2] named after the trimmed header; the scan then advances by
// BlockStride (three data columns plus the blank separator column, which is
// assumed blank and not validated). A blank or whitespace-only header
// advances the scan by a single column, so stray leading blanks shift the
// block instead of producing an off-by-one split.
//
// A trailing block cut short by the grid edge is still formed; its missing
// columns read as blank downstream. Blocks never overlap, and an empty
// header row yields no blocks.
func SplitBlocks(headers []string) []domain.CompanyBlock {
	var blocks []domain.CompanyBlock

	for i := 0; i < len(headers); {
		name := strings.TrimSpace(headers[i])
		if name == "" {
			i++
			continue
		}
		blocks = append(blocks, domain.CompanyBlock{Name: name, Start: i})
		i += domain.BlockStride
	}

	return blocks
}

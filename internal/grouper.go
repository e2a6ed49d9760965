package internal

// BlockSeparator is the token grep-family tools print between distinct
// context groups.
const BlockSeparator = "--"

// GroupBlocks folds a flat, ordered line stream into incident blocks.
// A separator closes whatever has accumulated so far; trailing lines at
// end of stream flush as a final block. An isolated separator with
// nothing accumulated contributes no block.
func GroupBlocks(lines []string) []IncidentBlock {
	var blocks []IncidentBlock
	var cur []string
	for _, line := range lines {
		if line == BlockSeparator {
			if len(cur) > 0 {
				blocks = append(blocks, IncidentBlock{Lines: cur})
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, IncidentBlock{Lines: cur})
	}
	return blocks
}

package ingest

import "strings"

// Similarity compares two strings case-insensitively and returns 2*M/T,
// where M counts runes in matching blocks and T is the combined length.
// Blocks are found by taking the longest common run, earliest first, and
// recursing on what lies either side of it. Two empty strings are identical.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(total)
}

type span struct {
	alo, ahi, blo, bhi int
}

func matchingRunes(a, b []rune) int {
	positions := make(map[rune][]int, len(b))
	for j, r := range b {
		positions[r] = append(positions[r], j)
	}

	matched := 0
	pending := []span{{0, len(a), 0, len(b)}}
	for len(pending) > 0 {
		s := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		i, j, k := longestMatch(a, positions, s)
		if k == 0 {
			continue
		}
		matched += k
		if s.alo < i && s.blo < j {
			pending = append(pending, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			pending = append(pending, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return matched
}

// longestMatch returns the longest common run inside s. Ties go to the run
// starting earliest in a, then earliest in b.
func longestMatch(a []rune, positions map[rune][]int, s span) (int, int, int) {
	besti, bestj, bestk := s.alo, s.blo, 0
	runs := map[int]int{}
	for i := s.alo; i < s.ahi; i++ {
		next := make(map[int]int)
		for _, j := range positions[a[i]] {
			if j < s.blo {
				continue
			}
			if j >= s.bhi {
				break
			}
			k := runs[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		runs = next
	}
	return besti, bestj, bestk
}

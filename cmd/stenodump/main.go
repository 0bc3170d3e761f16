// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// stenodump replays a trace of steno strokes, one chord per line (e.g.
// "TPHOPBT"), through the same lookup/joiner pipeline dispatch drives on
// the board, and prints what each stroke would have typed. It is a
// debugging aid for testing a dictionary image or a stroke trace captured
// off a board, not something the firmware itself runs.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"

	"github.com/tangybbq/corefw/joiner"
	"github.com/tangybbq/corefw/lookup"
	"github.com/tangybbq/corefw/memdict"
	"github.com/tangybbq/corefw/stroke"
)

func main() {
	dictPath := flag.String("dict", "", "memory dictionary image to load (omit to use only the algorithmic symbol dictionary)")
	flag.Parse()

	dicts, err := loadDictionaries(*dictPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "stenodump:", err)
		os.Exit(1)
	}

	in := os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, "stenodump:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if err := run(in, os.Stdout, dicts); err != nil {
		fmt.Fprintln(os.Stderr, "stenodump:", err)
		os.Exit(1)
	}
}

func loadDictionaries(dictPath string) ([]lookup.Dictionary, error) {
	dicts := []lookup.Dictionary{lookup.SymbolDict{}}
	if dictPath == "" {
		return dicts, nil
	}
	data, err := os.ReadFile(dictPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dictPath, err)
	}
	d, err := memdict.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dictPath, err)
	}
	// The memory dictionary takes priority over the algorithmic fallback.
	return []lookup.Dictionary{lookup.NewMemDictionary(d), lookup.SymbolDict{}}, nil
}

// strokeColumnWidth is the display width stroke chords are padded to,
// wide enough for the longest steno chord text (e.g. "STKPWHRAO*EUFRPBLGTSDZ")
// without crowding typical single-word chords.
const strokeColumnWidth = 24

func run(in *os.File, out *os.File, dicts []lookup.Dictionary) error {
	history := lookup.NewHistory(dicts)
	join := joiner.New()

	w := bufio.NewWriter(out)
	defer w.Flush()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		s, err := stroke.Parse(line)
		if err != nil {
			fmt.Fprintf(w, "%-*s  (parse error: %v)\n", strokeColumnWidth, line, err)
			continue
		}

		join.Add(history.Add(s))
		for {
			j, ok := join.Pop()
			if !ok {
				break
			}
			printJoined(w, line, j)
			line = "" // only the first printed row for a stroke gets the stroke text
		}
	}
	return scanner.Err()
}

// printJoined writes one row: the stroke text (blank after the first row
// for a given stroke, since one stroke may produce more than one pending
// edit), the number of characters deleted, and what was appended.
func printJoined(w *bufio.Writer, strokeText string, j joiner.Joined) {
	pad(w, strokeText, strokeColumnWidth)
	fmt.Fprintf(w, "  -%-3d  %s\n", j.Remove, j.Append)
}

// pad writes s followed by enough spaces to reach width display columns,
// measuring width the way a terminal would so wide (e.g. CJK) stroke
// glyphs still line up.
func pad(w *bufio.Writer, s string, width int) {
	w.WriteString(s)
	for col := runewidth.StringWidth(s); col < width; col++ {
		w.WriteByte(' ')
	}
}

package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB на одно зерно корпуса
)

var inlineSeeds = []string{
	"",
	"\n\n\n",
	"+-*/<>!@$%&^=|;:?,.",
	"<==>->!!=..:=...=~!~",
	"let x: int = 12\nconst y: regex = `rex(lang|xer)`\n",
	"\\\\hello, world\n  \\\\!\n",
	"\"unterminated",
	"`unterminated",
	"12.2.4 1..5 1...5 1.",
	"hey? yo! let? λñ",
	"a\x00b\xff\xfe",
	"# only a comment",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.rx файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".rx" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

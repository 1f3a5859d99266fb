package members

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kovetskiy/tally/vfs"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPattern = "sample_data/*.yaml"

	Key = "members"
)

type Entry struct {
	Path    string `yaml:"path"`
	Members int    `yaml:"members"`
}

type Report struct {
	Pattern string
	Entries []Entry
}

// Scanner counts members in every file matching a glob pattern.
//
// OnError is called for every file that can't be counted. Returning nil
// leaves the file out of the report, returning an error aborts the scan.
// Without OnError the first failure aborts the scan.
type Scanner struct {
	Opener  vfs.Opener
	OnError func(err error, path string) error
}

func NewScanner(opener vfs.Opener) *Scanner {
	return &Scanner{Opener: opener}
}

func (scanner *Scanner) Scan(pattern string) (*Report, error) {
	files, err := scanner.glob(pattern)
	if err != nil {
		return nil, karma.Format(err, "unable to expand pattern %q", pattern)
	}

	slices.Sort(files)

	log.Debugf(nil, "pattern %q matched %d files", pattern, len(files))

	report := &Report{
		Pattern: pattern,
		Entries: []Entry{},
	}

	for _, file := range files {
		entry, err := Count(scanner.Opener, file)
		if err != nil {
			if scanner.OnError == nil {
				return nil, err
			}

			err = scanner.OnError(err, file)
			if err != nil {
				return nil, err
			}

			continue
		}

		report.Entries = append(report.Entries, entry)
	}

	return report, nil
}

// glob lists matches from the same file system the opener reads.
func (scanner *Scanner) glob(pattern string) ([]string, error) {
	if opener, ok := scanner.Opener.(vfs.FSOpener); ok {
		return doublestar.Glob(opener.FS, pattern)
	}

	return doublestar.FilepathGlob(pattern)
}

// Count parses the YAML document at path and returns the length of its
// optional members list.
func Count(opener vfs.Opener, path string) (Entry, error) {
	data, err := vfs.ReadFile(opener, path)
	if err != nil {
		return Entry{}, karma.Format(err, "unable to read file %q", path)
	}

	count, err := CountMembers(data)
	if err != nil {
		return Entry{}, karma.Format(err, "unable to count %s in %q", Key, path)
	}

	log.Tracef(nil, "%s: %d %s", path, count, Key)

	return Entry{Path: path, Members: count}, nil
}

func CountMembers(data []byte) (int, error) {
	var document yaml.Node

	decoder := yaml.NewDecoder(bytes.NewReader(data))

	err := decoder.Decode(&document)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, karma.Format(err, "unable to parse yaml")
	}

	if document.Kind != yaml.DocumentNode || len(document.Content) == 0 {
		return 0, fmt.Errorf("document is empty")
	}

	var extra yaml.Node

	err = decoder.Decode(&extra)
	switch {
	case errors.Is(err, io.EOF):
	case err != nil:
		return 0, karma.Format(err, "unable to parse yaml")
	default:
		return 0, fmt.Errorf(
			"expected a single document, found another at line %d",
			extra.Line,
		)
	}

	root := resolve(document.Content[0])
	if root.Kind != yaml.MappingNode {
		return 0, fmt.Errorf(
			"document is a %s, not a mapping",
			root.ShortTag(),
		)
	}

	value := lookup(root)
	if value == nil {
		return 0, nil
	}

	return length(value)
}

// lookup finds the members value of a mapping. Explicit keys win over
// merged ones, the last explicit key wins on duplicates.
func lookup(mapping *yaml.Node) *yaml.Node {
	var value, merged *yaml.Node

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := resolve(mapping.Content[i])
		item := resolve(mapping.Content[i+1])

		switch {
		case isMerge(key):
			if merged == nil {
				merged = lookupMerged(item)
			}

		case key.Kind == yaml.ScalarNode && key.ShortTag() == "!!str" &&
			key.Value == Key:
			value = item
		}
	}

	if value != nil {
		return value
	}

	return merged
}

// lookupMerged follows a merge value: a mapping or a sequence of
// mappings where earlier mappings take precedence.
func lookupMerged(node *yaml.Node) *yaml.Node {
	switch node.Kind {
	case yaml.MappingNode:
		return lookup(node)

	case yaml.SequenceNode:
		for _, item := range node.Content {
			item = resolve(item)
			if item.Kind != yaml.MappingNode {
				continue
			}

			if value := lookup(item); value != nil {
				return value
			}
		}
	}

	return nil
}

func isMerge(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Value == "<<" &&
		(node.Tag == "" || node.Tag == "!" || node.ShortTag() == "!!merge")
}

func length(node *yaml.Node) (int, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		return len(node.Content), nil

	case yaml.MappingNode:
		return len(node.Content) / 2, nil

	case yaml.ScalarNode:
		var value interface{}

		err := node.Decode(&value)
		if err != nil {
			return 0, karma.Format(err, "unable to decode %q", Key)
		}

		if isEmpty(value) {
			return 0, nil
		}

		return 0, fmt.Errorf(
			"%q is a %s, not a list (line %d)",
			Key,
			node.ShortTag(),
			node.Line,
		)
	}

	return 0, fmt.Errorf("%q has unsupported yaml kind %d", Key, node.Kind)
}

func isEmpty(value interface{}) bool {
	switch value := value.(type) {
	case nil:
		return true
	case bool:
		return !value
	case int:
		return value == 0
	case uint64:
		return value == 0
	case float64:
		return value == 0
	case string:
		return value == ""
	}

	return false
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

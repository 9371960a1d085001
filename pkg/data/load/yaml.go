package load

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
)

// YAML reads a sequence of flat mappings. Column order follows the first
// appearance of each key in the document.
func YAML(r io.Reader) (*data.Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return data.New(nil, nil), nil
		}
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "parse yaml")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.ErrCodeInvalidData, "yaml input must be a sequence of mappings (line %d)", root.Line)
	}

	var header []string
	col := make(map[string]int)
	var cells []map[string]string
	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, errors.New(errors.ErrCodeInvalidData, "yaml item at line %d is not a mapping", item.Line)
		}
		row := make(map[string]string, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			k, v := item.Content[i].Value, item.Content[i+1]
			if _, ok := col[k]; !ok {
				col[k] = len(header)
				header = append(header, k)
			}
			if v.Kind == yaml.ScalarNode && v.Tag != "!!null" {
				row[k] = v.Value
			}
		}
		cells = append(cells, row)
	}

	rows := make([][]string, len(cells))
	for i, m := range cells {
		row := make([]string, len(header))
		for k, v := range m {
			row[col[k]] = v
		}
		rows[i] = row
	}
	return Table(header, rows), nil
}

package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

type csvCodec struct{}

func (csvCodec) decode(data []byte) ([][]string, []map[string]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, nil, fmt.Errorf("%w: %v", ErrStructure, err)
		}
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	header := records[0]
	values := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		m := make(map[string]string, len(header))
		for i, col := range header {
			m[col] = rec[i]
		}
		values = append(values, m)
	}
	return [][]string{header}, values, nil
}

func (csvCodec) encode(rows []model.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(model.Columns); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write(r.Fields()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

type jsonCodec struct{}

func (jsonCodec) decode(data []byte) ([][]string, []map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, nil, err
	}
	columns := make([][]string, 0, len(objects))
	values := make([]map[string]string, 0, len(objects))
	for _, obj := range objects {
		m := make(map[string]string, len(obj))
		for k, v := range obj {
			s, err := scalarString(v)
			if err != nil {
				return nil, nil, fmt.Errorf("column %s: %w", k, err)
			}
			m[k] = s
		}
		columns = append(columns, keys(m))
		values = append(values, m)
	}
	return columns, values, nil
}

func (jsonCodec) encode(rows []model.Row) ([]byte, error) {
	if rows == nil {
		rows = []model.Row{}
	}
	return json.MarshalIndent(rows, "", "  ")
}

type yamlCodec struct{}

func (yamlCodec) decode(data []byte) ([][]string, []map[string]string, error) {
	var docs []map[string]yaml.Node
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, nil, err
	}
	columns := make([][]string, 0, len(docs))
	values := make([]map[string]string, 0, len(docs))
	for _, doc := range docs {
		m := make(map[string]string, len(doc))
		for k, n := range doc {
			if n.Kind != yaml.ScalarNode {
				return nil, nil, fmt.Errorf("column %s: expected a scalar value", k)
			}
			if n.Tag != "!!null" {
				m[k] = n.Value
			} else {
				m[k] = ""
			}
		}
		columns = append(columns, keys(m))
		values = append(values, m)
	}
	return columns, values, nil
}

func (yamlCodec) encode(rows []model.Row) ([]byte, error) {
	if rows == nil {
		rows = []model.Row{}
	}
	return yaml.Marshal(rows)
}

type xmlCodec struct{}

type xmlLedger struct {
	XMLName xml.Name    `xml:"ledger"`
	Records []xmlRecord `xml:"record"`
}

type xmlRecord struct {
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func (xmlCodec) decode(data []byte) ([][]string, []map[string]string, error) {
	var doc xmlLedger
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	columns := make([][]string, 0, len(doc.Records))
	values := make([]map[string]string, 0, len(doc.Records))
	for _, rec := range doc.Records {
		cols := make([]string, 0, len(rec.Fields))
		m := make(map[string]string, len(rec.Fields))
		for _, f := range rec.Fields {
			cols = append(cols, f.XMLName.Local)
			m[f.XMLName.Local] = f.Value
		}
		columns = append(columns, cols)
		values = append(values, m)
	}
	return columns, values, nil
}

func (xmlCodec) encode(rows []model.Row) ([]byte, error) {
	doc := xmlLedger{Records: make([]xmlRecord, len(rows))}
	for i, r := range rows {
		fields := r.Fields()
		rec := xmlRecord{Fields: make([]xmlField, len(fields))}
		for j, v := range fields {
			rec.Fields[j] = xmlField{XMLName: xml.Name{Local: model.Columns[j]}, Value: v}
		}
		doc.Records[i] = rec
	}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}

// scalarString renders a decoded JSON scalar as ledger text.
func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("expected a scalar value, got %T", v)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

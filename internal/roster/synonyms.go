package roster

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Synonyms holds the known header labels for each canonical field.
// Matching is done on normalized keys, so list entries may be written in
// any width or case.
type Synonyms struct {
	Code       []string `yaml:"code"`
	Name       []string `yaml:"name"`
	Department []string `yaml:"department"`
	Role       []string `yaml:"role"`
}

// DefaultSynonyms returns the built-in Japanese/English label lists.
//
// Short generic words such as 番号, 担当 or a bare "name" are left out:
// the substring rule would let them claim 電話番号, 担当者名 or
// "Department Name". A plain "Name" cell still matches through "full name".
func DefaultSynonyms() Synonyms {
	return Synonyms{
		Code: []string{
			"担当者コード", "社員番号", "社員コード", "従業員番号", "従業員コード",
			"職員番号", "社員ID", "従業員ID", "ID",
			"code", "employee code", "employee id", "staff id", "emp no",
		},
		Name: []string{
			"担当者名", "氏名", "名前", "従業員名", "社員名", "職員名", "フルネーム",
			"full name", "employee name", "display name",
		},
		Department: []string{
			"部署", "部署名", "所属", "所属部署", "部門", "部門名", "部課", "事業部",
			"department", "dept", "division",
		},
		Role: []string{
			"役職", "役職名", "役割", "職位", "職種", "職務", "ロール", "権限",
			"role", "position", "job title", "title",
		},
	}
}

// For returns the list for f.
func (s Synonyms) For(f Field) []string {
	switch f {
	case FieldCode:
		return s.Code
	case FieldName:
		return s.Name
	case FieldDepartment:
		return s.Department
	case FieldRole:
		return s.Role
	}
	return nil
}

// synonymFile is the on-disk override format.
//
//	replace: false      # true drops the built-in lists for listed fields
//	name: [社員氏名]
//	role: [グレード]
type synonymFile struct {
	Replace bool `yaml:"replace"`
	Synonyms `yaml:",inline"`
}

// LoadSynonyms reads a YAML override file and merges it onto the defaults.
// Fields absent from the file keep their built-in lists.
func LoadSynonyms(path string) (Synonyms, error) {
	f, err := os.Open(path)
	if err != nil {
		return Synonyms{}, fmt.Errorf("open synonyms file: %w", err)
	}
	defer f.Close()
	return ParseSynonyms(f)
}

// ParseSynonyms decodes a YAML override document; see LoadSynonyms.
func ParseSynonyms(r io.Reader) (Synonyms, error) {
	var doc synonymFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return Synonyms{}, fmt.Errorf("decode synonyms: %w", err)
	}

	base := DefaultSynonyms()
	merge := func(def, extra []string) []string {
		if len(extra) == 0 {
			return def
		}
		if doc.Replace {
			return extra
		}
		return append(extra, def...)
	}
	return Synonyms{
		Code:       merge(base.Code, doc.Code),
		Name:       merge(base.Name, doc.Name),
		Department: merge(base.Department, doc.Department),
		Role:       merge(base.Role, doc.Role),
	}, nil
}

// YAML renders the lists as a full-replacement override file.
func (s Synonyms) YAML() ([]byte, error) {
	return yaml.Marshal(synonymFile{Replace: true, Synonyms: s})
}

// synonymIndex is Synonyms with every entry pre-normalized.
type synonymIndex [4][]string

func newSynonymIndex(s Synonyms) synonymIndex {
	var idx synonymIndex
	for _, f := range fieldPriority {
		for _, label := range s.For(f) {
			if key := Normalize(label); key != "" {
				idx[f] = append(idx[f], key)
			}
		}
	}
	return idx
}

func (idx synonymIndex) matches(f Field, key string) bool {
	for _, syn := range idx[f] {
		if keysMatch(key, syn) {
			return true
		}
	}
	return false
}

package fpf

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/m0n0x41d/quint-audit/errors"
)

// HashField is the front matter key holding the sha256 of the body.
const HashField = "content_hash"

const frontMatterDelim = "---"

// WriteWithHash writes body to path behind a YAML front matter block made of
// fields plus the body hash. Parent directories are created.
func WriteWithHash(path string, fields map[string]string, body string) error {
	fm := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		fm[k] = v
	}
	fm[HashField] = hashBody(body)

	header, err := yaml.Marshal(fm)
	if err != nil {
		return errors.Wrap(err, "encode front matter")
	}

	var buf bytes.Buffer
	buf.WriteString(frontMatterDelim + "\n")
	buf.Write(header)
	buf.WriteString(frontMatterDelim + "\n\n")
	buf.WriteString(body)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// ReadWithHash reads a file written by WriteWithHash. intact is false when
// the body no longer matches the recorded hash.
func ReadWithHash(path string) (fields map[string]string, body string, intact bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", false, errors.Wrapf(err, "read %s", path)
	}

	text := string(data)
	if !strings.HasPrefix(text, frontMatterDelim+"\n") {
		return nil, "", false, errors.Newf("%s has no front matter", path)
	}
	rest := text[len(frontMatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontMatterDelim+"\n")
	if end < 0 {
		return nil, "", false, errors.Newf("%s has unterminated front matter", path)
	}

	if err := yaml.Unmarshal([]byte(rest[:end+1]), &fields); err != nil {
		return nil, "", false, errors.Wrapf(err, "decode front matter of %s", path)
	}

	body = strings.TrimPrefix(rest[end+len(frontMatterDelim)+2:], "\n")
	return fields, body, fields[HashField] == hashBody(body), nil
}

func hashBody(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

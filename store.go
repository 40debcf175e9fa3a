package localesync

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

const (
	resourceExt      = ".json"
	DefaultNamespace = "common"
	resourceIndent   = "  "
	resourceFileMode = 0o644
	resourceDirMode  = 0o755
)

// MergeResource adds every key of pending that is absent from <languageDir>/<namespace>.json
// and writes the result back. Keys already present in the file are never altered or removed.
// A missing file is treated as an empty object. It returns how many keys were added.
func MergeResource(languageDir string, namespace string, pending map[string]string) (int, error) {
	path := filepath.Join(languageDir, namespace+resourceExt)
	tagError := func(err error) error {
		var re *ResourceError
		if errors.As(err, &re) {
			re.Language = filepath.Base(languageDir)
			re.Namespace = namespace
		}
		return err
	}

	existing, found, err := readResource(path)
	if err != nil {
		return 0, tagError(err)
	}

	added := 0
	for key, fallback := range pending {
		if _, exists := existing[key]; exists {
			continue
		}
		encoded, err := encodeText(fallback)
		if err != nil {
			return 0, fmt.Errorf("encode fallback for %q: %w", key, err)
		}
		existing[key] = encoded
		added++
	}
	if added == 0 && found {
		return 0, nil
	}

	if err := writeResource(path, existing); err != nil {
		return 0, tagError(err)
	}
	return added, nil
}

func encodeText(text string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(text); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func readResource(path string) (map[string]json.RawMessage, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]json.RawMessage{}, false, nil
		}
		if isBusy(err) {
			return nil, false, newResourceError(ErrBusy, path, err)
		}
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	var content map[string]json.RawMessage
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, true, newResourceError(ErrMalformedResource, path, err)
	}
	// "null" decodes without error but is not an object
	if content == nil {
		return nil, true, newResourceError(ErrMalformedResource, path, fmt.Errorf("expected a JSON object"))
	}
	return content, true, nil
}

func writeResource(path string, content map[string]json.RawMessage) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", resourceIndent)
	if err := enc.Encode(content); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), resourceFileMode); err != nil {
		if isBusy(err) {
			return newResourceError(ErrBusy, path, err)
		}
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ResourceFileStore is the on-disk layout <root>/<language>/<namespace>.json.
type ResourceFileStore struct {
	root string
}

func NewResourceFileStore(root string) *ResourceFileStore {
	return &ResourceFileStore{root: root}
}

func (s *ResourceFileStore) Root() string {
	return s.root
}

func (s *ResourceFileStore) LanguageDir(lang string) string {
	return filepath.Join(s.root, lang)
}

func (s *ResourceFileStore) Merge(lang string, namespace string, pending map[string]string) (int, error) {
	return MergeResource(s.LanguageDir(lang), namespace, pending)
}

// HasLanguage reports whether the language directory exists.
func (s *ResourceFileStore) HasLanguage(lang string) bool {
	if lang == "" {
		return false
	}
	info, err := os.Stat(s.LanguageDir(lang))
	return err == nil && info.IsDir()
}

// ReadNamespace returns the string entries of a namespace file. Entries with non-string
// values are skipped. An absent file yields an error matching ErrNotFound.
func (s *ResourceFileStore) ReadNamespace(lang string, namespace string) (map[string]string, error) {
	path := filepath.Join(s.LanguageDir(lang), namespace+resourceExt)
	raw, found, err := readResource(path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &ResourceError{Kind: ErrNotFound, Language: lang, Namespace: namespace, Path: path}
	}
	messages := make(map[string]string, len(raw))
	for key, value := range raw {
		var text string
		if json.Unmarshal(value, &text) == nil {
			messages[key] = text
		}
	}
	return messages, nil
}

// Namespaces lists the namespace files of a language, sorted.
func (s *ResourceFileStore) Namespaces(lang string) ([]string, error) {
	entries, err := os.ReadDir(s.LanguageDir(lang))
	if err != nil {
		return nil, fmt.Errorf("list namespaces of %s: %w", lang, err)
	}
	var namespaces []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, resourceExt) {
			continue
		}
		namespaces = append(namespaces, strings.TrimSuffix(name, resourceExt))
	}
	sort.Strings(namespaces)
	return namespaces, nil
}

// KnownLanguages lists the language directories under the root. A listing failure yields an
// empty list, the same as a root without languages.
func (s *ResourceFileStore) KnownLanguages() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return []string{}
	}
	languages := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			languages = append(languages, entry.Name())
		}
	}
	sort.Strings(languages)
	return languages
}

// CreateLanguage creates <root>/<code>/ with an empty common namespace file. An existing
// common.json is left untouched.
func (s *ResourceFileStore) CreateLanguage(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("language is required")
	}
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("invalid language %q: %w", code, err)
	}
	if strings.ContainsAny(code, `/\`) {
		return fmt.Errorf("invalid language %q", code)
	}

	dir := s.LanguageDir(code)
	if err := os.MkdirAll(dir, resourceDirMode); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, DefaultNamespace+resourceExt)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, resourceFileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.WriteString("{}\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Category represents one product category: the display name (the literal
// folder name on disk) and the ordered list of web-relative image paths.
type Category struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

// Catalog maps slugified category keys to categories. Key order is
// significant (it is the scan order) and survives JSON round-trips, which a
// plain map cannot guarantee.
type Catalog struct {
	keys    []string
	entries map[string]*Category
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]*Category)}
}

// Get returns the category for key, if present.
func (c *Catalog) Get(key string) (*Category, bool) {
	entry, ok := c.entries[key]
	return entry, ok
}

// Set inserts or replaces the category for key. A replaced key keeps its
// original position.
func (c *Catalog) Set(key string, entry *Category) {
	if _, ok := c.entries[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = entry
}

// Delete removes the category for key, if present.
func (c *Catalog) Delete(key string) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the category keys in insertion order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// ErrNotObject is returned when the JSON value is not an object.
var ErrNotObject = errors.New("catalog: value is not a JSON object")

// MarshalJSON writes the catalog as a JSON object with keys in insertion
// order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(c.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving its key order.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	c.keys = nil
	c.entries = make(map[string]*Category)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return ErrNotObject
		}
		var entry Category
		if err := dec.Decode(&entry); err != nil {
			return err
		}
		c.Set(key, &entry)
	}

	_, err = dec.Token()
	return err
}

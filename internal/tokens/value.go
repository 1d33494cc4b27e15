package tokens

import "strings"

// Image is one uploaded screenshot. MediumURL is optional.
type Image struct {
	URL       string `json:"url"`
	MediumURL string `json:"medium_url,omitempty"`
}

// Value is a resolved token value. Exactly one of Text, List or Images is
// meaningful; the zero Value is the empty string.
type Value struct {
	Text   string
	List   []string
	Images []Image
}

// Text wraps a string.
func Text(s string) Value { return Value{Text: s} }

// List wraps an ordered list of strings.
func List(items []string) Value {
	if len(items) == 0 {
		return Value{}
	}
	return Value{List: items}
}

// Images wraps an ordered list of screenshots.
func Images(items []Image) Value {
	if len(items) == 0 {
		return Value{}
	}
	return Value{Images: items}
}

// IsEmpty reports whether the value carries no data.
func (v Value) IsEmpty() bool {
	return v.Text == "" && len(v.List) == 0 && len(v.Images) == 0
}

// IsText reports whether the value is a plain string (including empty).
func (v Value) IsText() bool {
	return len(v.List) == 0 && len(v.Images) == 0
}

// String flattens the value for literal substitution. Lists are joined with
// newlines; images use their medium URL when present.
func (v Value) String() string {
	switch {
	case len(v.List) > 0:
		return strings.Join(v.List, "\n")
	case len(v.Images) > 0:
		urls := make([]string, 0, len(v.Images))
		for _, img := range v.Images {
			if img.MediumURL != "" {
				urls = append(urls, img.MediumURL)
			} else {
				urls = append(urls, img.URL)
			}
		}
		return strings.Join(urls, "\n")
	}
	return v.Text
}

// Interface returns the value in the shape a general template engine
// expects: string, []string or []Image.
func (v Value) Interface() any {
	switch {
	case len(v.List) > 0:
		return v.List
	case len(v.Images) > 0:
		return v.Images
	}
	return v.Text
}

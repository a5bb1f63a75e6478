package notion

// Page is a database row as returned by the Notion API. Only the property
// kinds this service reads or writes are modelled.
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

type Property struct {
	Type     string     `json:"type,omitempty"`
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Relation []Relation `json:"relation,omitempty"`
	Date     *DateValue `json:"date,omitempty"`
	Number   *float64   `json:"number,omitempty"`
}

type RichText struct {
	PlainText string `json:"plain_text,omitempty"`
	Text      *Text  `json:"text,omitempty"`
}

type Text struct {
	Content string `json:"content"`
}

type Relation struct {
	ID string `json:"id"`
}

// DateValue keeps Notion's date strings verbatim so callers decide how to
// interpret them.
type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

type queryRequest struct {
	Filter      any    `json:"filter,omitempty"`
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

type queryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

type createPageRequest struct {
	Parent     parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

// Title returns the plain text of a title property.
func (p Page) Title(name string) string {
	prop, ok := p.Properties[name]
	if !ok {
		return ""
	}
	return joinText(prop.Title)
}

// Text returns the plain text of a rich text property.
func (p Page) Text(name string) string {
	prop, ok := p.Properties[name]
	if !ok {
		return ""
	}
	return joinText(prop.RichText)
}

// FirstRelation returns the first related page ID of a relation property.
func (p Page) FirstRelation(name string) (string, bool) {
	prop, ok := p.Properties[name]
	if !ok || len(prop.Relation) == 0 || prop.Relation[0].ID == "" {
		return "", false
	}
	return prop.Relation[0].ID, true
}

// DateRange returns the start and end of a date property. A missing end
// defaults to the start.
func (p Page) DateRange(name string) (start, end string, ok bool) {
	prop, found := p.Properties[name]
	if !found || prop.Date == nil || prop.Date.Start == "" {
		return "", "", false
	}
	start = prop.Date.Start
	end = start
	if prop.Date.End != nil && *prop.Date.End != "" {
		end = *prop.Date.End
	}
	return start, end, true
}

func joinText(parts []RichText) string {
	var out string
	for _, part := range parts {
		switch {
		case part.PlainText != "":
			out += part.PlainText
		case part.Text != nil:
			out += part.Text.Content
		}
	}
	return out
}

// TitleValue builds a title property holding content.
func TitleValue(content string) Property {
	return Property{Title: []RichText{{Text: &Text{Content: content}}}}
}

// TextValue builds a rich text property holding content.
func TextValue(content string) Property {
	return Property{RichText: []RichText{{Text: &Text{Content: content}}}}
}

// RelationValue builds a relation property pointing at pageID.
func RelationValue(pageID string) Property {
	return Property{Relation: []Relation{{ID: pageID}}}
}

// NumberValue builds a number property.
func NumberValue(n float64) Property {
	return Property{Number: &n}
}

// DateRangeValue builds a date property; an empty end is omitted.
func DateRangeValue(start, end string) Property {
	d := &DateValue{Start: start}
	if end != "" {
		d.End = &end
	}
	return Property{Date: d}
}

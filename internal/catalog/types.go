package catalog

import "strings"

// StashID links a studio to an external metadata endpoint.
type StashID struct {
	Endpoint string `json:"endpoint"`
	StashID  string `json:"stash_id"`
}

// StudioRef is a reference to a studio by identifier.
type StudioRef struct {
	ID string `json:"id"`
}

// Studio is a hierarchical named entity associated with scenes. ParentStudio
// is a reference only; resolving the full parent requires a FindStudio call.
type Studio struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	ParentStudio *StudioRef `json:"parent_studio"`
	StashIDs     []StashID  `json:"stash_ids"`
}

// Endpoints returns the external endpoints the studio is linked to.
func (s *Studio) Endpoints() []string {
	if s == nil {
		return nil
	}
	endpoints := make([]string, 0, len(s.StashIDs))
	for _, sid := range s.StashIDs {
		if trimmed := strings.TrimSpace(sid.Endpoint); trimmed != "" {
			endpoints = append(endpoints, trimmed)
		}
	}
	return endpoints
}

// HasEndpoint reports whether the studio carries a stash id for the endpoint.
func (s *Studio) HasEndpoint(endpoint string) bool {
	endpoint = strings.TrimSpace(endpoint)
	if s == nil || endpoint == "" {
		return false
	}
	for _, candidate := range s.Endpoints() {
		if candidate == endpoint {
			return true
		}
	}
	return false
}

// File is the metadata for one physical file belonging to a scene. Read-only
// to the rename pipeline.
type File struct {
	ID         string `json:"id"`
	Path       string `json:"path"`
	Basename   string `json:"basename"`
	Format     string `json:"format"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	VideoCodec string `json:"video_codec"`
	AudioCodec string `json:"audio_codec"`
}

// Ext returns the file extension derived from the basename, without the dot.
func (f *File) Ext() string {
	if f == nil {
		return ""
	}
	idx := strings.LastIndex(f.Basename, ".")
	if idx < 0 {
		return f.Basename
	}
	return f.Basename[idx+1:]
}

// Scene is an immutable snapshot of catalog metadata for one logical media
// item, possibly backed by multiple physical files.
type Scene struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Date     string  `json:"date"`
	Director string  `json:"director"`
	Code     string  `json:"code"`
	Studio   *Studio `json:"studio"`
	Files    []File  `json:"files"`
}

// Year returns the year segment of the scene date, empty when undated.
func (s *Scene) Year() string {
	return dateSegment(s.Date, 0)
}

// Month returns the month segment of the scene date, empty when undated.
func (s *Scene) Month() string {
	return dateSegment(s.Date, 1)
}

func dateSegment(date string, index int) string {
	if strings.TrimSpace(date) == "" {
		return ""
	}
	parts := strings.Split(date, "-")
	if index >= len(parts) {
		return ""
	}
	return parts[index]
}

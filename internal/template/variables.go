package template

import (
	"context"
	"strconv"
	"strings"

	"reshelf/internal/catalog"
)

// Variable identifies a known template placeholder. The set is closed: an
// unknown $name$ token is left untouched by the formatter.
type Variable int

const (
	VarAudioCodec Variable = iota
	VarExt
	VarFormat
	VarHeight
	VarIndex
	VarVideoCodec
	VarWidth
	VarSceneID
	VarTitle
	VarDate
	VarDirector
	VarMonth
	VarParentStudioChain
	VarStudioCode
	VarStudioName
	VarYear
	VarEndpoints
)

// variablesByName maps placeholder names to variable kinds. File-scoped names
// are registered first and win if a scene-scoped name ever collides.
var variablesByName = map[string]Variable{
	"audio_codec": VarAudioCodec,
	"ext":         VarExt,
	"format":      VarFormat,
	"height":      VarHeight,
	"index":       VarIndex,
	"video_codec": VarVideoCodec,
	"width":       VarWidth,

	"scene_id":            VarSceneID,
	"title":               VarTitle,
	"date":                VarDate,
	"director":            VarDirector,
	"month":               VarMonth,
	"parent_studio_chain": VarParentStudioChain,
	"studio_code":         VarStudioCode,
	"studio_name":         VarStudioName,
	"year":                VarYear,
	"endpoints":           VarEndpoints,
}

// Resolver maps variables to string values drawn from scene and file records.
// Resolution never fails; missing data degrades to the empty string.
type Resolver struct {
	studios catalog.StudioLookup
}

// NewResolver constructs a resolver. The studio lookup is only consulted for
// the parent-studio-chain variable and may be nil when templates never use it.
func NewResolver(studios catalog.StudioLookup) *Resolver {
	return &Resolver{studios: studios}
}

// Resolve returns the value for one variable. The duplicate index is threaded
// explicitly rather than stuffed into the file record; index zero resolves to
// empty so duplicate-suffix sections elide on the first attempt.
func (r *Resolver) Resolve(ctx context.Context, variable Variable, scene *catalog.Scene, file *catalog.File, index int) string {
	switch variable {
	case VarAudioCodec:
		return fileField(file, func(f *catalog.File) string { return f.AudioCodec })
	case VarExt:
		return fileField(file, (*catalog.File).Ext)
	case VarFormat:
		return fileField(file, func(f *catalog.File) string { return f.Format })
	case VarHeight:
		return fileDimension(file, func(f *catalog.File) int { return f.Height })
	case VarIndex:
		if index <= 0 {
			return ""
		}
		return strconv.Itoa(index)
	case VarVideoCodec:
		return fileField(file, func(f *catalog.File) string { return f.VideoCodec })
	case VarWidth:
		return fileDimension(file, func(f *catalog.File) int { return f.Width })
	case VarSceneID:
		return sceneField(scene, func(s *catalog.Scene) string { return s.ID })
	case VarTitle:
		return sceneField(scene, func(s *catalog.Scene) string { return s.Title })
	case VarDate:
		return sceneField(scene, func(s *catalog.Scene) string { return s.Date })
	case VarDirector:
		return sceneField(scene, func(s *catalog.Scene) string { return s.Director })
	case VarMonth:
		return sceneField(scene, (*catalog.Scene).Month)
	case VarParentStudioChain:
		return r.studioChain(ctx, scene)
	case VarStudioCode:
		return sceneField(scene, func(s *catalog.Scene) string { return s.Code })
	case VarStudioName:
		if scene == nil || scene.Studio == nil {
			return ""
		}
		return scene.Studio.Name
	case VarYear:
		return sceneField(scene, (*catalog.Scene).Year)
	case VarEndpoints:
		if scene == nil {
			return ""
		}
		return strings.Join(scene.Studio.Endpoints(), ", ")
	default:
		return ""
	}
}

func fileField(file *catalog.File, get func(*catalog.File) string) string {
	if file == nil {
		return ""
	}
	return get(file)
}

func fileDimension(file *catalog.File, get func(*catalog.File) int) string {
	if file == nil {
		return ""
	}
	value := get(file)
	if value <= 0 {
		return ""
	}
	return strconv.Itoa(value)
}

func sceneField(scene *catalog.Scene, get func(*catalog.Scene) string) string {
	if scene == nil {
		return ""
	}
	return get(scene)
}

// studioChain walks parent-studio references from the scene's studio to the
// root and joins the collected names root-first with "/". A visited set stops
// the walk if the catalog ever serves a cyclic chain; a failed lookup stops
// the walk with the names gathered so far.
func (r *Resolver) studioChain(ctx context.Context, scene *catalog.Scene) string {
	if scene == nil || scene.Studio == nil {
		return ""
	}

	names := []string{scene.Studio.Name}
	visited := map[string]struct{}{scene.Studio.ID: {}}

	current := scene.Studio
	for current.ParentStudio != nil && r.studios != nil {
		parentID := current.ParentStudio.ID
		if _, seen := visited[parentID]; seen {
			break
		}
		parent, err := r.studios.FindStudio(ctx, parentID)
		if err != nil || parent == nil {
			break
		}
		visited[parentID] = struct{}{}
		names = append(names, parent.Name)
		current = parent
	}

	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

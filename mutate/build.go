package mutate

import (
	"fmt"

	"github.com/corecraft/worldkit/world"
)

// BuildActions are the accepted build modification actions.
var BuildActions = []string{"add", "remove", "swap"}

// multiInstanceCategories are component categories a build may carry more
// than one of. Everything else is limited to a single component.
var multiInstanceCategories = map[string]bool{
	"memory":  true,
	"storage": true,
}

// ConflictError reports a build composition rule violation, carrying the
// conflicting component ids when known.
type ConflictError struct {
	Message  string
	Existing []string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) ErrorResult() map[string]any {
	res := map[string]any{"error": e.Message}
	if len(e.Existing) > 0 {
		res["existing_components"] = e.Existing
	}
	return res
}

// BuildChange reports a successful build modification.
type BuildChange struct {
	Success          bool         `json:"success"`
	Action           string       `json:"action"`
	BuildID          string       `json:"build_id"`
	ProductID        string       `json:"product_id"`
	SwappedOut       string       `json:"swapped_out,omitempty"`
	ReplacementsMade int          `json:"replacements_made,omitempty"`
	Build            world.Entity `json:"build"`
}

// ModifyBuild adds, removes or swaps a component on a build. Categories
// outside memory and storage allow one component each: adding a second fails
// with a conflict pointing at the existing component, and swap replaces the
// category's single distinct product, including every duplicate of it. No
// mutation happens on any error path.
func ModifyBuild(w *world.World, clock world.Clock, buildID, productID, action string) (*BuildChange, error) {
	if !containsString(BuildActions, action) {
		return nil, &EnumError{Field: "action", Value: action, Valid: BuildActions}
	}
	build, ok := w.Table("build").Get(buildID)
	if !ok {
		return nil, &world.NotFoundError{Kind: "build", ID: buildID}
	}
	products := w.Table("product")
	product, ok := products.Get(productID)
	if !ok {
		return nil, &world.NotFoundError{Kind: "product", ID: productID}
	}
	category, _ := product["category"].(string)
	if category == "" {
		return nil, &ConflictError{Message: fmt.Sprintf("Product '%s' has no category", productID)}
	}

	componentIDs := componentList(build)

	// Map each present category to its component ids.
	categories := map[string][]string{}
	for _, id := range componentIDs {
		if comp, ok := products.Get(id); ok {
			if cat, _ := comp["category"].(string); cat != "" {
				categories[cat] = append(categories[cat], id)
			}
		}
	}

	change := &BuildChange{Action: action, BuildID: buildID, ProductID: productID}

	switch action {
	case "add":
		if containsString(componentIDs, productID) {
			return nil, &ConflictError{Message: fmt.Sprintf("Product '%s' already exists in build", productID)}
		}
		if !multiInstanceCategories[category] && len(categories[category]) > 0 {
			return nil, &ConflictError{
				Message: fmt.Sprintf(
					"Build already contains a '%s' component. Category '%s' does not allow multiple instances. Use 'swap' action to replace it.",
					category, category),
				Existing: categories[category],
			}
		}
		build["componentIds"] = toAnySlice(append(componentIDs, productID))

	case "remove":
		if !containsString(componentIDs, productID) {
			return nil, &world.NotFoundError{Kind: "build component", ID: productID}
		}
		kept := make([]string, 0, len(componentIDs))
		removed := false
		for _, id := range componentIDs {
			if !removed && id == productID {
				removed = true
				continue
			}
			kept = append(kept, id)
		}
		build["componentIds"] = toAnySlice(kept)

	case "swap":
		existing := categories[category]
		if len(existing) == 0 {
			return nil, &ConflictError{Message: fmt.Sprintf("No '%s' component found in build to swap with", category)}
		}
		distinct := distinctStrings(existing)
		if len(distinct) > 1 {
			return nil, &ConflictError{
				Message:  fmt.Sprintf("Multiple different '%s' components found in build. Cannot determine which to swap.", category),
				Existing: distinct,
			}
		}
		swapOut := distinct[0]
		if swapOut == productID {
			return nil, &ConflictError{Message: fmt.Sprintf("Product '%s' is already in the build. No swap needed.", productID)}
		}
		swapped := make([]string, 0, len(componentIDs))
		for _, id := range componentIDs {
			if id == swapOut {
				swapped = append(swapped, productID)
				change.ReplacementsMade++
			} else {
				swapped = append(swapped, id)
			}
		}
		build["componentIds"] = toAnySlice(swapped)
		change.SwappedOut = swapOut
	}

	build["updatedAt"] = clock.Now()
	change.Success = true
	change.Build = build
	return change, nil
}

// componentList reads componentIds off a build, tolerating both []any (JSON
// decoded) and []string shapes. Non-string members are dropped.
func componentList(build world.Entity) []string {
	switch v := build["componentIds"].(type) {
	case []string:
		return append([]string{}, v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// toAnySlice keeps componentIds in the JSON-decoded representation so the
// build round-trips through the codec unchanged.
func toAnySlice(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func distinctStrings(in []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

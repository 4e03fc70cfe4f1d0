package part

import (
	"sort"

	"github.com/hdlforge/bob/internal/constants"
)

// Placeholders returns, for each registered part type, the sorted set of
// distinct placeholder names appearing in any of its command templates,
// excluding the implicitly injected {_project_name} and {_pwd}.
//
// This is the introspection surface behind the parts listing command; it has
// no side effects.
func (r *Registry) Placeholders() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string][]string, len(r.parts))
	for name, tmpl := range r.parts {
		seen := make(map[string]struct{})
		for _, cmd := range tmpl.Commands {
			for _, token := range cmd {
				for _, match := range placeholderPattern.FindAllStringSubmatch(token, -1) {
					placeholder := match[1]
					if placeholder == constants.PlaceholderProjectName || placeholder == constants.PlaceholderWorkDir {
						continue
					}
					seen[placeholder] = struct{}{}
				}
			}
		}

		names := make([]string, 0, len(seen))
		for placeholder := range seen {
			names = append(names, placeholder)
		}
		sort.Strings(names)
		result[name] = names
	}

	return result
}

package tags

// Defaults returns the built-in tag palette used when no persisted tags
// exist.
func Defaults() []Tag {
	return []Tag{
		{Name: "DEBUG", Color: "#00FFFF", Enabled: true, Order: 0},
		{Name: "INFO", Color: "#00FF00", Enabled: true, Order: 1},
		{Name: "WARN", Color: "#FFFF00", Enabled: true, Order: 2},
		{Name: "ERROR", Color: "#FF0000", Enabled: true, Order: 3},
		{Name: "HEADER", Color: "#0000FF", Enabled: true, Order: 4},
		{Name: "FOOTER", Color: "#0000FF", Enabled: true, Order: 5},
	}
}

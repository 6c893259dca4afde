// Package profile resolves named configuration profiles.
//
// A Store holds the DEFAULT section, whose values apply to every profile,
// followed by the named sections in the order they were declared:
//
//	store := profile.Store{
//		Default: profile.Section{Name: profile.DefaultName, Values: map[string]string{
//			"publicurl": "https://files.example.com",
//			"uploadurl": "me@example.com:/srv/files",
//		}},
//		Sections: []profile.Section{
//			{Name: "images", Values: map[string]string{"subdir": "img"}},
//		},
//	}
//
//	p, err := profile.Resolve("img", store) // prefix match selects "images"
//
// Values are returned as stored. Converting them to booleans or lists is the
// caller's job.
package profile

// ABOUTME: Fixed content of the Bright Path Primary School page, assembled into a Document tree.
// ABOUTME: Render is total over its empty input and returns a fresh value on every call.
package site

// FrameworkURL is the Tailwind Play CDN script that interprets the class tokens.
const FrameworkURL = "https://cdn.tailwindcss.com"

// SchoolName appears in the page title, hero headline, and footer.
const SchoolName = "Bright Path Primary School"

// Render assembles the page. It takes no input, always succeeds, and holds no state.
func Render() Document {
	return Document{
		Lang:  "en",
		Title: SchoolName,
		Framework: ExternalResource{
			Kind: "script",
			URL:  FrameworkURL,
		},
		BodyStyle: Style{Class: "bg-[#fdfaf6] text-[#1f2d3d] font-sans"},
		Sections: []PageSection{
			header(),
			hero(),
			features(),
			callToAction(),
			footer(),
		},
	}
}

func header() PageSection {
	navStyle := Style{Class: "hover:text-yellow-300"}
	return PageSection{
		Kind:   KindHeader,
		Anchor: "home",
		Title:  "Bright Path School",
		Links: []NavLink{
			{Label: "Home", Anchor: "home", Style: navStyle},
			{Label: "About", Anchor: "about", Style: navStyle},
			{Label: "Admissions", Anchor: "admissions", Style: navStyle},
			{Label: "Contact", Anchor: "contact", Style: navStyle},
		},
		Style: Style{
			Class: "bg-[#003366] text-white px-6 py-4 flex justify-between items-center shadow-md",
			Title: "text-2xl font-bold",
			Body:  "space-x-6 text-lg",
		},
	}
}

func hero() PageSection {
	return PageSection{
		Kind:   KindHero,
		Anchor: "welcome",
		Title:  "Welcome to " + SchoolName,
		Body:   "A nurturing environment where young minds grow with confidence, creativity, and care.",
		Style: Style{
			Class: "bg-yellow-300 text-[#003366] text-center py-16 px-4",
			Title: "text-4xl font-bold mb-4",
			Body:  "text-xl max-w-2xl mx-auto",
		},
	}
}

func features() PageSection {
	cardStyle := Style{
		Class: "bg-white p-6 rounded-2xl shadow hover:shadow-lg",
		Title: "text-2xl font-semibold mb-2",
	}
	return PageSection{
		Kind:   KindFeatures,
		Anchor: "about",
		Cards: []FeatureCard{
			{
				Title:       "Academic Excellence",
				Description: "Our curriculum encourages curiosity and achievement in all areas.",
				Style:       cardStyle,
			},
			{
				Title:       "Caring Faculty",
				Description: "Experienced teachers who focus on each child’s individual growth.",
				Style:       cardStyle,
			},
			{
				Title:       "Vibrant Student Life",
				Description: "Clubs, events, and play bring learning to life outside the classroom.",
				Style:       cardStyle,
			},
		},
		Style: Style{Class: "py-16 px-6 max-w-6xl mx-auto grid md:grid-cols-3 gap-10 text-center"},
	}
}

func callToAction() PageSection {
	return PageSection{
		Kind:   KindCallToAction,
		Anchor: "admissions",
		Title:  "Ready to Join Us?",
		Links: []NavLink{
			{
				Label:  "Apply Now",
				Anchor: "admissions",
				Style:  Style{Class: "bg-yellow-300 text-[#003366] font-semibold px-6 py-3 rounded-full hover:bg-yellow-400"},
			},
		},
		Style: Style{
			Class: "bg-[#003366] text-white py-12 text-center",
			Title: "text-3xl font-bold mb-4",
		},
	}
}

func footer() PageSection {
	return PageSection{
		Kind:   KindFooter,
		Anchor: "contact",
		Body:   "© 2025 " + SchoolName + ". All rights reserved.",
		Style:  Style{Class: "bg-[#002244] text-white py-6 text-center text-sm"},
	}
}

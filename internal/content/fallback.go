package content

import "strconv"

// Fallback returns the compiled-in site copy. It mirrors content/site.yaml so
// the site stays whole even when the content directory is missing from a
// deploy.
func Fallback() Site {
	return Site{
		Couple:   "Mika & Darshika",
		Monogram: "M&D",
		Hero: Hero{
			DateLabel:  "January 9th 2027",
			FirstName:  "Mika",
			SecondName: "Darshika",
		},
		Invitation: Invitation{
			Hosts:   "Uday & Sashi Narayan and Sophia Sangsongkhram",
			Line:    "joyfully invite you to celebrate the wedding of",
			Couple:  "Mika & Darshika",
			Details: []string{
				"Wedding date: 9 January 2027",
				"Residence: Narayan Residence, Glen Innes, Auckland, New Zealand",
			},
			RSVPBy: "31 March 2026",
			Image:  "/assets/images/welcome.jpg",
		},
		Schedule: Section{
			Title: "Schedule",
			Body:  "<p>A schedule of the day's events and rituals will be posted later this year.</p>",
			Image: "/assets/images/schedule.jpg",
		},
		FAQ: []FAQItem{
			{
				Question: "How will I know which address to go to on the day?",
				Answer:   "<p>For privacy reasons, we will be posting the address of the location closer to the date of the wedding.</p>",
			},
			{
				Question: "What is the dress code?",
				Answer:   "<p>The dress code is formal wear and we encourage you to wear your traditional cultural outfits. We recommend that you do not wear high heels as it will be an outdoor event.</p>",
			},
			{
				Question: "Is there parking available?",
				Answer:   "<p>As the wedding will be held at the Narayan family home, there will only be on street parking available. We recommend you to carpool with other guests where possible.</p>",
			},
			{
				Question: "How will you cater for my dietary requirements?",
				Answer:   "<p>All of the food served will be vegetarian. Unfortunately, we will not be able to cater for specific dietary requirements or allergies e.g. gluten free.</p>",
			},
		},
		Gallery: galleryImages(),
		SEO: SEO{
			Title:       "Mika & Darshika, January 9th 2027",
			Description: "Join us to celebrate the wedding of Mika and Darshika in Auckland, New Zealand.",
		},
	}
}

func galleryImages() []string {
	out := make([]string, 0, 11)
	for i := 1; i <= 11; i++ {
		out = append(out, "/assets/images/gallery/"+strconv.Itoa(i)+".jpg")
	}
	return out
}

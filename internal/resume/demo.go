package resume

// LoadDemoData replaces the resume with a filled-in sample.
func (b *Builder) LoadDemoData() {
	b.Data = Data{
		PersonalInfo: PersonalInfo{
			FullName:  "Alex Carter",
			Email:     "alex.carter@example.com",
			Phone:     "+1 555-0123",
			LinkedIn:  "linkedin.com/in/alexcarter",
			Portfolio: "alexcarter.design",
			Location:  "San Francisco, CA",
			Summary:   "Experienced Product Designer with 5+ years of experience in building user-centered digital products. Skilled in UI/UX design, prototyping, and design systems.",
		},
		Experience: []Experience{
			{
				ID:          "exp-1",
				Company:     "TechFlow Solutions",
				Role:        "Senior UX Designer",
				Location:    "Remote",
				StartDate:   "2021-03",
				EndDate:     "Present",
				Current:     true,
				Description: "Led the redesign of the core SaaS platform, increasing user retention by 25%. Mentored junior designers and established a new design system.",
			},
			{
				ID:          "exp-2",
				Company:     "Creative Studio",
				Role:        "UI Designer",
				Location:    "New York, NY",
				StartDate:   "2018-06",
				EndDate:     "2021-02",
				Description: "Collaborated with cross-functional teams to ship mobile apps for Fortune 500 clients. Conducted user research and usability testing.",
			},
		},
		Education: []Education{
			{
				ID:             "edu-1",
				School:         "Parsons School of Design",
				Degree:         "BFA in Interaction Design",
				Location:       "New York, NY",
				GraduationDate: "2018-05",
				GPA:            "3.8",
			},
		},
		Skills:     []string{"Figma", "Adobe XD", "React", "HTML/CSS", "User Research", "Prototyping"},
		Activities: "Volunteer Web Designer for local non-profits. Organizer of 'Design Talk' meetup group.",
	}
}

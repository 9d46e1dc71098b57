package store

import "scholarsync/internal/types"

// DefaultCurrentUserID is the member the client acts as (James Chen).
const DefaultCurrentUserID = "2"

// SeedUsers returns the built-in member collection.
func SeedUsers() []types.User {
	return []types.User{
		{
			ID:                "1",
			Name:              "Dr. Elena Foster",
			Role:              types.RoleProfessor,
			Institution:       "MIT",
			Interests:         []string{"Climate Science", "Oceanography", "Data Analysis"},
			Avatar:            "https://picsum.photos/seed/elena/200/200",
			Bio:               "Looking for passionate students to work on coastal ecosystem resilience projects.",
			CollaboratorScore: 920,
			SocialLinks: &types.SocialLinks{
				GoogleScholar: "https://scholar.google.com",
				LinkedIn:      "https://linkedin.com",
				ORCID:         "0000-0001-2345-6789",
			},
		},
		{
			ID:                "2",
			Name:              "James Chen",
			Role:              types.RoleStudent,
			Institution:       "Stanford University",
			Interests:         []string{"Artificial Intelligence", "Healthcare", "Computer Vision"},
			Avatar:            "https://picsum.photos/seed/james/200/200",
			Bio:               "Developing AI models for early disease detection. Need mentorship on clinical trials.",
			CollaboratorScore: 750,
			SocialLinks: &types.SocialLinks{
				LinkedIn: "https://linkedin.com",
				Website:  "https://jameschen.io",
			},
		},
		{
			ID:                "3",
			Name:              "Sarah Ng",
			Role:              types.RoleResearcher,
			Institution:       "CERN",
			Interests:         []string{"Particle Physics", "Quantum Computing"},
			Avatar:            "https://picsum.photos/seed/sarah/200/200",
			Bio:               "Exploring quantum algorithms for high-energy physics simulations.",
			CollaboratorScore: 880,
			SocialLinks: &types.SocialLinks{
				GoogleScholar: "https://scholar.google.com",
				ORCID:         "0000-0002-9876-5432",
			},
		},
		{
			ID:                "4",
			Name:              "Raj Patel",
			Role:              types.RoleAspiring,
			Institution:       "Mumbai High School",
			Interests:         []string{"Sustainable Energy", "Solar Cells"},
			Avatar:            "https://picsum.photos/seed/raj/200/200",
			Bio:               "High school senior working on perovskite solar cells. Seeking mentorship for Intel ISEF project.",
			CollaboratorScore: 640,
			SocialLinks: &types.SocialLinks{
				LinkedIn: "https://linkedin.com",
			},
		},
	}
}

// SeedPosts returns the built-in research snapshots.
func SeedPosts() []types.ResearchPost {
	return []types.ResearchPost{
		{
			ID:           "101",
			AuthorID:     "2",
			AuthorName:   "James Chen",
			AuthorAvatar: "https://picsum.photos/seed/james/100/100",
			Title:        "AI in Radiology: Quick Update",
			Description:  "Just achieved 95% accuracy on the new dataset! Here is a quick breakdown of the architecture used.",
			Tags:         []string{"AI", "Healthcare", "Milestone"},
			Likes:        124,
		},
		{
			ID:           "102",
			AuthorID:     "1",
			AuthorName:   "Dr. Elena Foster",
			AuthorAvatar: "https://picsum.photos/seed/elena/100/100",
			Title:        "The State of Coral Reefs",
			Description:  "Field work update from the Great Barrier Reef. The bleaching events are accelerating.",
			Tags:         []string{"Climate", "FieldWork"},
			Likes:        890,
		},
		{
			ID:           "103",
			AuthorID:     "4",
			AuthorName:   "Raj Patel",
			AuthorAvatar: "https://picsum.photos/seed/raj/100/100",
			Title:        "Lab Tour: Solar Simulator",
			Description:  "Showing you around our new solar simulator setup at my school lab.",
			Tags:         []string{"LabLife", "Energy"},
			Likes:        45,
		},
	}
}

// SeedOpportunities returns the built-in marketplace listings.
func SeedOpportunities() []types.Opportunity {
	return []types.Opportunity{
		{
			ID:          "201",
			Title:       "NSF Graduate Research Fellowship",
			Institution: "National Science Foundation",
			Type:        types.OpportunityGrant,
			Deadline:    "2024-10-15",
			Amount:      "$34,000 / yr",
		},
		{
			ID:          "202",
			Title:       "Postdoctoral Researcher in Neurobiology",
			Institution: "Harvard Medical School",
			Type:        types.OpportunityJob,
			Deadline:    "2024-06-30",
			Amount:      "Salary Competitive",
		},
		{
			ID:          "203",
			Title:       "Call for Papers: Journal of Clean Energy",
			Institution: "Elsevier",
			Type:        types.OpportunityCollaboration,
			Deadline:    "2024-08-01",
		},
	}
}

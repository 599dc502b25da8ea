package models

// All returns one value of every persisted model, in dependency order, for
// migration and code generation.
func All() []any {
	return []any{
		&ProjectCategory{},
		&Project{},
		&Service{},
		&Testimonial{},
		&BlogCategory{},
		&BlogPost{},
		&ContactInquiry{},
		&NewsletterSubscriber{},
		&CompanyStat{},
		&Partner{},
		&RoadmapMilestone{},
	}
}

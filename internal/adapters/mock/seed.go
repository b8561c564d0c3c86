package mock

import (
	"time"

	"github.com/okian/placement/internal/domain/model"
)

type seedData struct {
	matches       []model.Match
	resources     []model.Resource
	profile       model.Profile
	advisors      []model.Advisor
	appointments  []model.Appointment
	conversations []model.Conversation
	messages      []model.Message
	milestones    []model.Milestone
}

// newSeed lays the demo data out relative to now so that upcoming and past
// appointments stay meaningful whenever the process starts.
func newSeed(now time.Time) seedData {
	now = now.UTC()
	day := now.Truncate(24 * time.Hour)
	at := func(days, hour int) time.Time {
		return day.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	}
	ptr := func(t time.Time) *time.Time { return &t }

	return seedData{
		matches: []model.Match{
			{ID: "m1", CompanyName: "Northwind Labs", Industry: "Technology", CompanySize: "51-200", Role: "Backend Developer Intern", Location: "Lisbon", EmploymentType: model.EmploymentInternship, MatchScore: 92, Tags: []string{"go", "postgres", "docker"}, Status: model.MatchNew, CreatedAt: at(-1, 9)},
			{ID: "m2", CompanyName: "Bluefin Capital", Industry: "Finance", CompanySize: "1000+", Role: "Data Analyst Apprentice", Location: "Porto", EmploymentType: model.EmploymentApprenticeship, MatchScore: 67, Tags: []string{"sql", "excel"}, Status: model.MatchNew, CreatedAt: at(-2, 9)},
			{ID: "m3", CompanyName: "Greenleaf Energy", Industry: "Energy", CompanySize: "201-1000", Role: "Sustainability Intern", Location: "Lisbon", EmploymentType: model.EmploymentInternship, MatchScore: 85, Tags: []string{"research", "reporting"}, Saved: true, Status: model.MatchSaved, CreatedAt: at(-3, 9)},
			{ID: "m4", CompanyName: "Atlas Logistics", Industry: "Logistics", CompanySize: "1000+", Role: "Operations Trainee", Location: "Berlin", EmploymentType: model.EmploymentFullTime, MatchScore: 74, Tags: []string{"operations", "planning"}, Status: model.MatchNew, CreatedAt: at(-4, 9)},
			{ID: "m5", CompanyName: "Cobalt Cloud", Industry: "Technology", CompanySize: "51-200", Role: "Platform Engineering Intern", Location: "Porto", EmploymentType: model.EmploymentInternship, MatchScore: 88, Tags: []string{"kubernetes", "go", "terraform"}, Applied: true, Status: model.MatchApplied, CreatedAt: at(-5, 9)},
			{ID: "m6", CompanyName: "Helix Health", Industry: "Healthcare", CompanySize: "201-1000", Role: "Product Design Intern", Location: "Berlin", EmploymentType: model.EmploymentInternship, MatchScore: 85, Tags: []string{"figma", "ux"}, Status: model.MatchNew, CreatedAt: at(-6, 9)},
			{ID: "m7", CompanyName: "Mosaic Media", Industry: "Media", CompanySize: "11-50", Role: "Content Assistant", Location: "Lisbon", EmploymentType: model.EmploymentPartTime, MatchScore: 59, Tags: []string{"writing", "social"}, Status: model.MatchNew, CreatedAt: at(-7, 9)},
			{ID: "m8", CompanyName: "Quantum Retail", Industry: "Retail", CompanySize: "1000+", Role: "Software Engineering Intern", Location: "Madrid", EmploymentType: model.EmploymentInternship, MatchScore: 95, Tags: []string{"java", "react"}, Saved: true, Status: model.MatchSaved, CreatedAt: at(-8, 9)},
			{ID: "m9", CompanyName: "Orbit Analytics", Industry: "Technology", CompanySize: "11-50", Role: "Machine Learning Intern", Location: "Porto", EmploymentType: model.EmploymentInternship, MatchScore: 81, Tags: []string{"python", "ml"}, Status: model.MatchNew, CreatedAt: at(-9, 9)},
			{ID: "m10", CompanyName: "Summit Consulting", Industry: "Consulting", CompanySize: "201-1000", Role: "Business Analyst Intern", Location: "Lisbon", EmploymentType: model.EmploymentInternship, MatchScore: 70, Tags: []string{"strategy", "excel"}, Status: model.MatchNew, CreatedAt: at(-10, 9)},
		},
		resources: []model.Resource{
			{ID: "res-1", Title: "Writing a CV that gets read", Category: model.CategoryCV, Type: model.ResourceArticle, Description: "Structure, length and the sections recruiters look for first.", Content: "Keep it to one page. Lead with a short profile, then experience and education in reverse order.", DurationMinutes: 8, CreatedAt: at(-30, 10), Views: 214},
			{ID: "res-2", Title: "Cover letter template", Category: model.CategoryCV, Type: model.ResourcePDF, Description: "A fill-in template for internship applications.", URL: "https://resources.placement.local/cover-letter.pdf", DurationMinutes: 5, CreatedAt: at(-25, 10), Views: 128},
			{ID: "res-3", Title: "Mock interview: behavioural questions", Category: model.CategoryInterview, Type: model.ResourceVideo, Description: "Practice answering with the STAR method.", URL: "https://resources.placement.local/star-interview", DurationMinutes: 25, Bookmarked: true, CreatedAt: at(-20, 10), Views: 301},
			{ID: "res-4", Title: "Work visa checklist", Category: model.CategoryVisa, Type: model.ResourceChecklist, Description: "Documents to prepare before your placement abroad.", Content: "Passport, offer letter, proof of enrolment, health insurance.", DurationMinutes: 4, CreatedAt: at(-15, 10), Views: 97},
			{ID: "res-5", Title: "Your first week at work", Category: model.CategoryWorkplace, Type: model.ResourceArticle, Description: "Meeting your team, asking questions and setting goals.", DurationMinutes: 6, CreatedAt: at(-12, 10), Views: 64},
			{ID: "res-6", Title: "Managing stress during applications", Category: model.CategoryWellbeing, Type: model.ResourceLink, Description: "Support services and routines that help.", URL: "https://resources.placement.local/wellbeing", DurationMinutes: 10, CreatedAt: at(-9, 10), Views: 41},
			{ID: "res-7", Title: "Finding hidden internships", Category: model.CategoryJobSearch, Type: model.ResourceArticle, Description: "Networking, alumni and speculative applications.", DurationMinutes: 12, CreatedAt: at(-5, 10), Views: 158},
			{ID: "res-8", Title: "Technical interview warm-up", Category: model.CategoryInterview, Type: model.ResourceChecklist, Description: "Topics to revise before a coding interview.", DurationMinutes: 15, CreatedAt: at(-2, 10), Views: 73},
		},
		profile: model.Profile{
			FullName:  "Alex Morgan",
			Email:     "alex.morgan@student.placement.local",
			School:    "University of Lisbon",
			Skills:    []string{"go", "sql"},
			Languages: []string{"English"},
		},
		advisors: []model.Advisor{
			{ID: "adv-1", Name: "Marta Costa", Title: "Career Advisor", Office: "Careers Centre, Room 2.14", Specialties: []string{"CV review", "Interview practice"}, Languages: []string{"English", "Portuguese"}},
			{ID: "adv-2", Name: "Daniel Weber", Title: "International Placements Officer", Office: "International Office, Room 1.03", Specialties: []string{"Visas", "Relocation"}, Languages: []string{"English", "German"}},
			{ID: "adv-3", Name: "Sofia Reyes", Title: "Employer Relations Lead", Office: "Careers Centre, Room 2.20", Specialties: []string{"Employer introductions", "Offers"}, Languages: []string{"English", "Spanish"}},
		},
		appointments: []model.Appointment{
			{ID: "apt-1", AdvisorID: "adv-1", AdvisorName: "Marta Costa", DateTime: at(-3, 10), DurationMinutes: slotMinutes, Type: model.AppointmentInPerson, LocationOrLink: "Careers Centre, Room 2.14", Topic: "CV review", Status: model.AppointmentScheduled, CreatedAt: at(-10, 9), UpdatedAt: at(-10, 9)},
			{ID: "apt-2", AdvisorID: "adv-2", AdvisorName: "Daniel Weber", DateTime: at(2, 14), DurationMinutes: slotMinutes, Type: model.AppointmentOnline, LocationOrLink: meetingLink("apt-2"), Topic: "Visa questions", Status: model.AppointmentScheduled, CreatedAt: at(-2, 9), UpdatedAt: at(-2, 9)},
			{ID: "apt-3", AdvisorID: "adv-3", AdvisorName: "Sofia Reyes", DateTime: at(5, 11), DurationMinutes: slotMinutes, Type: model.AppointmentOnline, LocationOrLink: meetingLink("apt-3"), Topic: "Offer negotiation", Status: model.AppointmentCancelled, CreatedAt: at(-4, 9), UpdatedAt: at(-1, 9)},
		},
		conversations: []model.Conversation{
			{ID: "conv-1", Participant: "Marta Costa", ParticipantID: "adv-1", Subject: "CV feedback", LastMessage: "I left a few comments on your education section.", LastMessageAt: at(-1, 15), Unread: 2},
			{ID: "conv-2", Participant: "Northwind Labs", ParticipantID: "m1", Subject: "Backend Developer Intern", LastMessage: "Thanks, we will be in touch next week.", LastMessageAt: at(-4, 11), Unread: 0},
			{ID: "conv-3", Participant: "Daniel Weber", ParticipantID: "adv-2", Subject: "Visa appointment", LastMessage: "Please bring your offer letter.", LastMessageAt: at(-2, 16), Unread: 1},
		},
		messages: []model.Message{
			{ID: "msg-1", ConversationID: "conv-1", Sender: model.SenderStudent, Body: "Could you take a look at my CV?", SentAt: at(-2, 9), Status: model.MessageSent},
			{ID: "msg-2", ConversationID: "conv-1", Sender: model.SenderContact, Body: "Of course, send it over.", SentAt: at(-2, 11), Status: model.MessageSent},
			{ID: "msg-3", ConversationID: "conv-1", Sender: model.SenderContact, Body: "I left a few comments on your education section.", SentAt: at(-1, 15), Status: model.MessageSent},
			{ID: "msg-4", ConversationID: "conv-2", Sender: model.SenderStudent, Body: "I have submitted my application.", SentAt: at(-5, 10), Status: model.MessageSent},
			{ID: "msg-5", ConversationID: "conv-2", Sender: model.SenderContact, Body: "Thanks, we will be in touch next week.", SentAt: at(-4, 11), Status: model.MessageSent},
			{ID: "msg-6", ConversationID: "conv-3", Sender: model.SenderContact, Body: "Please bring your offer letter.", SentAt: at(-2, 16), Status: model.MessageSent},
		},
		milestones: []model.Milestone{
			{ID: "ms-1", Title: "Complete your profile", Description: "Fill in skills, education and preferences.", Stage: model.StagePreparation, Status: model.MilestoneDone, Order: 1, CompletedAt: ptr(at(-14, 12))},
			{ID: "ms-2", Title: "Get your CV reviewed", Description: "Book a session with a career advisor.", Stage: model.StagePreparation, Status: model.MilestoneDone, Order: 2, CompletedAt: ptr(at(-3, 11))},
			{ID: "ms-3", Title: "Apply to five placements", Description: "Shortlist matches and send applications.", Stage: model.StageApplication, Status: model.MilestoneInProgress, Order: 3, DueDate: ptr(at(14, 0))},
			{ID: "ms-4", Title: "Prepare for interviews", Description: "Work through the interview resources.", Stage: model.StageInterview, Status: model.MilestoneTodo, Order: 4, DueDate: ptr(at(28, 0))},
			{ID: "ms-5", Title: "Accept an offer", Description: "Compare offers and confirm your placement.", Stage: model.StagePlacement, Status: model.MilestoneTodo, Order: 5, DueDate: ptr(at(60, 0))},
			{ID: "ms-6", Title: "Sort out your visa", Description: "Only needed for placements abroad.", Stage: model.StagePlacement, Status: model.MilestoneTodo, Order: 6},
		},
	}
}

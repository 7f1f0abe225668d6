package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"mentorship/admin/internal/domain"
)

func (c *adminClient) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	var faqs []domain.FAQ
	if err := c.get(ctx, "/faqs", &faqs); err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	return faqs, nil
}

func (c *adminClient) CreateFAQ(ctx context.Context, in domain.FAQInput) (domain.FAQ, error) {
	var faq domain.FAQ
	if err := c.doJSON(ctx, http.MethodPost, "/faqs", in, &faq); err != nil {
		return domain.FAQ{}, fmt.Errorf("failed to create faq: %w", err)
	}
	return faq, nil
}

func (c *adminClient) UpdateFAQ(ctx context.Context, id string, in domain.FAQInput) error {
	if err := c.doJSON(ctx, http.MethodPut, "/faqs/"+url.PathEscape(id), in, nil); err != nil {
		return fmt.Errorf("failed to update faq %s: %w", id, err)
	}
	return nil
}

func (c *adminClient) DeleteFAQ(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/faqs/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete faq %s: %w", id, err)
	}
	return nil
}

func teamMemberForm(in domain.TeamMemberInput) (map[string]string, *upload) {
	fields := map[string]string{
		"name":  in.Name,
		"role":  in.Role,
		"bio":   in.Bio,
		"order": strconv.Itoa(in.Order),
	}
	if in.LinkedInURL != "" {
		fields["linkedin"] = in.LinkedInURL
	}

	if in.Image == nil {
		return fields, nil
	}

	name := in.ImageName
	if name == "" {
		name = "image"
	}
	return fields, &upload{field: "image", name: name, reader: in.Image}
}

func (c *adminClient) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	var members []domain.TeamMember
	if err := c.get(ctx, "/team", &members); err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

func (c *adminClient) CreateTeamMember(ctx context.Context, in domain.TeamMemberInput) (domain.TeamMember, error) {
	fields, file := teamMemberForm(in)

	var member domain.TeamMember
	if err := c.doMultipart(ctx, http.MethodPost, "/team", fields, file, &member); err != nil {
		return domain.TeamMember{}, fmt.Errorf("failed to create team member: %w", err)
	}
	return member, nil
}

func (c *adminClient) UpdateTeamMember(ctx context.Context, id string, in domain.TeamMemberInput) error {
	fields, file := teamMemberForm(in)

	if err := c.doMultipart(ctx, http.MethodPut, "/team/"+url.PathEscape(id), fields, file, nil); err != nil {
		return fmt.Errorf("failed to update team member %s: %w", id, err)
	}
	return nil
}

func (c *adminClient) DeleteTeamMember(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/team/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete team member %s: %w", id, err)
	}
	return nil
}

func (c *adminClient) GetWebsiteStats(ctx context.Context) (domain.WebsiteStats, error) {
	var stats domain.WebsiteStats
	if err := c.get(ctx, "/website-stats", &stats); err != nil {
		return domain.WebsiteStats{}, fmt.Errorf("failed to get website stats: %w", err)
	}
	return stats, nil
}

func (c *adminClient) UpdateWebsiteStats(ctx context.Context, stats domain.WebsiteStats) error {
	if err := c.doJSON(ctx, http.MethodPut, "/website-stats", stats, nil); err != nil {
		return fmt.Errorf("failed to update website stats: %w", err)
	}
	return nil
}

func (c *adminClient) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	var staff []domain.Staff
	if err := c.get(ctx, "/staff", &staff); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (c *adminClient) UpdateStaff(ctx context.Context, id string, update domain.AccountUpdate) error {
	if err := c.doJSON(ctx, http.MethodPut, "/staff/"+url.PathEscape(id), update, nil); err != nil {
		return fmt.Errorf("failed to update staff %s: %w", id, err)
	}
	return nil
}

func (c *adminClient) DeleteStaff(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/staff/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete staff %s: %w", id, err)
	}
	return nil
}

func (c *adminClient) ListStudents(ctx context.Context) ([]domain.Student, error) {
	var students []domain.Student
	if err := c.get(ctx, "/students", &students); err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (c *adminClient) UpdateStudent(ctx context.Context, id string, update domain.AccountUpdate) error {
	if err := c.doJSON(ctx, http.MethodPut, "/students/"+url.PathEscape(id), update, nil); err != nil {
		return fmt.Errorf("failed to update student %s: %w", id, err)
	}
	return nil
}

func (c *adminClient) DeleteStudent(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/students/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete student %s: %w", id, err)
	}
	return nil
}

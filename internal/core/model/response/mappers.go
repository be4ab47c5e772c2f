package response

import "taskhub/internal/core/domain"

func UserFromDomain(u domain.User) UserResponse {
	return UserResponse{
		UUID:        u.UUID.String(),
		Email:       u.Email,
		DisplayName: u.Name,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

func TaskFromDomain(t domain.TaskWithList) TaskResponse {
	resp := TaskResponse{
		UUID:        t.UUID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	if t.List != nil {
		resp.List = &ListSummaryResponse{
			UUID:  t.List.UUID.String(),
			Name:  t.List.Name,
			Color: t.List.Color,
		}
	}

	return resp
}

func TasksFromDomain(tasks []domain.TaskWithList) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))

	for _, t := range tasks {
		out = append(out, TaskFromDomain(t))
	}

	return out
}

func ListFromDomain(l domain.List, taskCount int) ListResponse {
	return ListResponse{
		UUID:      l.UUID.String(),
		Name:      l.Name,
		Color:     l.Color,
		Position:  l.Position,
		TaskCount: taskCount,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func ListDetailFromDomain(l domain.List) ListDetailResponse {
	return ListDetailResponse{
		UUID:      l.UUID.String(),
		Name:      l.Name,
		Color:     l.Color,
		Position:  l.Position,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func HistoryFromDomain(entries []domain.StatusHistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))

	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			OldStatus: string(e.OldStatus),
			NewStatus: string(e.NewStatus),
			ChangedAt: e.ChangedAt,
		})
	}

	return out
}

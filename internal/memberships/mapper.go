package memberships

import (
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
)

type memberRow struct {
	models.HomeMember
	Email       string `gorm:"column:email"`
	DisplayName string `gorm:"column:display_name"`
}

func memberFromRow(row memberRow) MemberDTO {
	return MemberDTO{
		UserID:      row.UserID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		Role:        row.Role,
		Status:      row.Status,
		InvitedBy:   copyUUIDPointer(row.InvitedBy),
		CreatedAt:   row.CreatedAt,
	}
}

func memberRowsToDTO(rows []memberRow) []MemberDTO {
	out := make([]MemberDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberFromRow(row))
	}
	return out
}

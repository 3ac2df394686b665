package services

import (
	"strings"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/idgen"
	"tourdesk/internal/mailer"
	"tourdesk/internal/utils"

	"github.com/shopspring/decimal"
)

type TravelerService struct {
	Travelers TravelerStore
	IDs       IDSource
	Mail      mailer.Mailer
	RequestID string
	Now       func() time.Time
}

func (s TravelerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type TravelerInput struct {
	AvatarURL string `json:"avatarUrl"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (in *TravelerInput) clean() error {
	in.AvatarURL = strings.TrimSpace(in.AvatarURL)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)

	if in.FullName == "" {
		return domain.ValidationError{Field: "fullName", Msg: "required"}
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return domain.ValidationError{Field: "email", Msg: "valid email required"}
	}
	if in.Phone == "" {
		return domain.ValidationError{Field: "phone", Msg: "required"}
	}
	return nil
}

// Register creates a traveler with a zero credit-note balance.
func (s TravelerService) Register(in TravelerInput) (models.Traveler, error) {
	if err := in.clean(); err != nil {
		return models.Traveler{}, err
	}

	if _, taken, err := s.Travelers.FindByEmailOrPhone(in.Email, in.Phone, ""); err != nil {
		return models.Traveler{}, domain.InternalError{Err: err}
	} else if taken {
		return models.Traveler{}, domain.ConflictError{Resource: "traveler", Msg: "email or phone already registered"}
	}

	id, err := s.IDs.Next(idgen.EntityTraveler)
	if err != nil {
		return models.Traveler{}, domain.InternalError{Err: err}
	}

	t := models.Traveler{
		ID:        id,
		AvatarURL: in.AvatarURL,
		FullName:  in.FullName,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Refund:    decimal.Zero,
		CreatedAt: s.now(),
	}
	if err := s.Travelers.Create(t); err != nil {
		return models.Traveler{}, domain.InternalError{Err: err}
	}

	if s.Mail != nil {
		if err := s.Mail.Send(t.Email, "Welcome aboard", "Hi "+t.FullName+", your traveler profile "+t.ID+" is ready."); err != nil {
			utils.LogEvent(s.RequestID, "traveler", "notify", "mail failed: "+err.Error())
		}
	}
	utils.LogEvent(s.RequestID, "traveler", "register", "id="+t.ID)
	return t, nil
}

func (s TravelerService) Update(id string, in TravelerInput) (models.Traveler, error) {
	if err := in.clean(); err != nil {
		return models.Traveler{}, err
	}

	t, err := s.Travelers.GetByID(id)
	if err != nil {
		return models.Traveler{}, err
	}
	if _, taken, err := s.Travelers.FindByEmailOrPhone(in.Email, in.Phone, id); err != nil {
		return models.Traveler{}, domain.InternalError{Err: err}
	} else if taken {
		return models.Traveler{}, domain.ConflictError{Resource: "traveler", Msg: "email or phone already registered"}
	}

	t.AvatarURL = in.AvatarURL
	t.FullName = in.FullName
	t.Email = in.Email
	t.Phone = in.Phone
	t.Address = in.Address
	if err := s.Travelers.Update(t); err != nil {
		return models.Traveler{}, err
	}
	utils.LogEvent(s.RequestID, "traveler", "update", "id="+id)
	return t, nil
}

func (s TravelerService) Get(id string) (models.Traveler, error) {
	return s.Travelers.GetByID(id)
}

func (s TravelerService) List(f domain.ListFilter) ([]models.Traveler, int, error) {
	return s.Travelers.List(f)
}

func (s TravelerService) Delete(id string) error {
	if err := s.Travelers.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "traveler", "delete", "id="+id)
	return nil
}

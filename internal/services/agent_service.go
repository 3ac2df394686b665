package services

import (
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/idgen"
	"tourdesk/internal/mailer"
	"tourdesk/internal/utils"

	"github.com/shopspring/decimal"
)

type AgentService struct {
	Agents    AgentStore
	IDs       IDSource
	Mail      mailer.Mailer
	RequestID string
	Now       func() time.Time
}

func (s AgentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates an agent with a zero coin balance. The contact
// validation is shared with travelers.
func (s AgentService) Register(in TravelerInput) (models.Agent, error) {
	if err := in.clean(); err != nil {
		return models.Agent{}, err
	}

	if _, taken, err := s.Agents.FindByEmailOrPhone(in.Email, in.Phone, ""); err != nil {
		return models.Agent{}, domain.InternalError{Err: err}
	} else if taken {
		return models.Agent{}, domain.ConflictError{Resource: "agent", Msg: "email or phone already registered"}
	}

	id, err := s.IDs.Next(idgen.EntityAgent)
	if err != nil {
		return models.Agent{}, domain.InternalError{Err: err}
	}

	a := models.Agent{
		ID:        id,
		AvatarURL: in.AvatarURL,
		FullName:  in.FullName,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Coins:     decimal.Zero,
		CreatedAt: s.now(),
	}
	if err := s.Agents.Create(a); err != nil {
		return models.Agent{}, domain.InternalError{Err: err}
	}

	if s.Mail != nil {
		if err := s.Mail.Send(a.Email, "Welcome aboard", "Hi "+a.FullName+", your agent profile "+a.ID+" is ready."); err != nil {
			utils.LogEvent(s.RequestID, "agent", "notify", "mail failed: "+err.Error())
		}
	}
	utils.LogEvent(s.RequestID, "agent", "register", "id="+a.ID)
	return a, nil
}

func (s AgentService) Update(id string, in TravelerInput) (models.Agent, error) {
	if err := in.clean(); err != nil {
		return models.Agent{}, err
	}

	a, err := s.Agents.GetByID(id)
	if err != nil {
		return models.Agent{}, err
	}
	if _, taken, err := s.Agents.FindByEmailOrPhone(in.Email, in.Phone, id); err != nil {
		return models.Agent{}, domain.InternalError{Err: err}
	} else if taken {
		return models.Agent{}, domain.ConflictError{Resource: "agent", Msg: "email or phone already registered"}
	}

	a.AvatarURL = in.AvatarURL
	a.FullName = in.FullName
	a.Email = in.Email
	a.Phone = in.Phone
	a.Address = in.Address
	if err := s.Agents.Update(a); err != nil {
		return models.Agent{}, err
	}
	utils.LogEvent(s.RequestID, "agent", "update", "id="+id)
	return a, nil
}

func (s AgentService) Get(id string) (models.Agent, error) {
	return s.Agents.GetByID(id)
}

func (s AgentService) List(f domain.ListFilter) ([]models.Agent, int, error) {
	return s.Agents.List(f)
}

func (s AgentService) Delete(id string) error {
	if err := s.Agents.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "agent", "delete", "id="+id)
	return nil
}

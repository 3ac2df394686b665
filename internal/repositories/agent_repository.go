package repositories

import (
	"database/sql"
	"errors"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"

	"github.com/shopspring/decimal"
)

type AgentRepository struct {
	DB *sql.DB
}

const agentColumns = `id, COALESCE(avatar_url,''), full_name, email, phone, COALESCE(address,''), coins, created_at`

func scanAgent(row *sql.Row) (models.Agent, error) {
	var a models.Agent
	err := row.Scan(&a.ID, &a.AvatarURL, &a.FullName, &a.Email, &a.Phone, &a.Address, &a.Coins, &a.CreatedAt)
	return a, err
}

func (r AgentRepository) Create(a models.Agent) error {
	_, err := r.DB.Exec(`
		INSERT INTO agents (id, avatar_url, full_name, email, phone, address, coins, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.AvatarURL, a.FullName, a.Email, a.Phone, a.Address, a.Coins, a.CreatedAt,
	)
	return err
}

func (r AgentRepository) GetByID(id string) (models.Agent, error) {
	a, err := scanAgent(r.DB.QueryRow(`SELECT `+agentColumns+` FROM agents WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Agent{}, domain.NotFoundError{Resource: "agent"}
	}
	return a, err
}

func (r AgentRepository) FindByEmailOrPhone(email, phone, excludeID string) (models.Agent, bool, error) {
	a, err := scanAgent(r.DB.QueryRow(`
		SELECT `+agentColumns+`
		FROM agents
		WHERE (email = ? OR phone = ?) AND id <> ?
		LIMIT 1`, email, phone, excludeID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Agent{}, false, nil
	}
	if err != nil {
		return models.Agent{}, false, err
	}
	return a, true, nil
}

func (r AgentRepository) Update(a models.Agent) error {
	res, err := r.DB.Exec(`
		UPDATE agents
		SET avatar_url = ?, full_name = ?, email = ?, phone = ?, address = ?
		WHERE id = ?`,
		a.AvatarURL, a.FullName, a.Email, a.Phone, a.Address, a.ID,
	)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "agent")
}

func (r AgentRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM agents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "agent")
}

// AddCoins adjusts the commission balance. delta may be negative
// (post-completion refund reversal); the balance is intentionally not
// clamped at zero.
func (r AgentRepository) AddCoins(id string, delta decimal.Decimal) error {
	res, err := r.DB.Exec(`UPDATE agents SET coins = coins + ? WHERE id = ?`, delta, id)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "agent")
}

func (r AgentRepository) List(f domain.ListFilter) ([]models.Agent, int, error) {
	where, args := searchWindowClause(f, []string{"full_name", "email", "phone", "id"})

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM agents`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(`SELECT `+agentColumns+` FROM agents`+where+orderAndPage(f), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Agent
	for rows.Next() {
		var a models.Agent
		if err := rows.Scan(&a.ID, &a.AvatarURL, &a.FullName, &a.Email, &a.Phone, &a.Address, &a.Coins, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

package rbac

import (
	"context"
	"time"

	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repo de asignaciones atado a esa tx.
// Garantiza que un reemplazo de asignaciones sea todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(assignments repository.AssignmentRepository) error) error
}

// Recorder recibe las mediciones del servicio (implementado por infrastructure/metrics).
type Recorder interface {
	ObserveResolution(accessLevel string)
	ObserveStage(stage string, start time.Time)
	ObserveAssignment(association string, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveResolution(string)        {}
func (nopRecorder) ObserveStage(string, time.Time)  {}
func (nopRecorder) ObserveAssignment(string, error) {}

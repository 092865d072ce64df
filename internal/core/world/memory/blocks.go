package memory

import (
	"github.com/zeusync/durability/internal/core/models"
	"github.com/zeusync/durability/internal/core/systems/physics"
	"github.com/zeusync/durability/internal/core/vars"
)

var (
	_ models.Component     = (*Block)(nil)
	_ models.PowerConsumer = (*Consumer)(nil)
	_ models.Reactor       = (*ReactorBlock)(nil)
)

// Block is a plain component. Integrity is stored atomically so host systems
// can read it while a pass writes.
type Block struct {
	integrity *vars.AtomicFloat64
	min       physics.Vec3i
}

func NewBlock(min physics.Vec3i, integrity float64) *Block {
	return &Block{integrity: vars.NewAtomicFloat64(integrity), min: min}
}

func (b *Block) Integrity() float64     { return b.integrity.Get() }
func (b *Block) SetIntegrity(v float64) { b.integrity.Set(v) }
func (b *Block) Min() physics.Vec3i     { return b.min }

// Consumer is a block that draws power.
type Consumer struct {
	*Block
	draw *vars.AtomicFloat64
}

func NewConsumer(min physics.Vec3i, integrity, draw float64) *Consumer {
	return &Consumer{Block: NewBlock(min, integrity), draw: vars.NewAtomicFloat64(draw)}
}

func (c *Consumer) PowerDraw() float64     { return c.draw.Get() }
func (c *Consumer) SetPowerDraw(v float64) { c.draw.Set(v) }

// ReactorBlock is a block that produces power.
type ReactorBlock struct {
	*Block
	output *vars.AtomicFloat64
}

func NewReactor(min physics.Vec3i, integrity, output float64) *ReactorBlock {
	return &ReactorBlock{Block: NewBlock(min, integrity), output: vars.NewAtomicFloat64(output)}
}

func (r *ReactorBlock) PowerOutput() float64     { return r.output.Get() }
func (r *ReactorBlock) SetPowerOutput(v float64) { r.output.Set(v) }

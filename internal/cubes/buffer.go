package cubes

import (
	"fmt"

	"cubevox/internal/engine"
)

// InstanceBuffer owns the device buffer holding a model's instances. Its
// element count is fixed at creation; a different count needs a new buffer.
type InstanceBuffer struct {
	buffer engine.Buffer
	size   int
}

// NewInstanceBuffer allocates a buffer holding instances and commits its
// length as the buffer's size.
func NewInstanceBuffer(dev engine.Device, instances []CubeInstance) *InstanceBuffer {
	data := AppendInstances(make([]byte, 0, len(instances)*InstanceSize), instances)
	engine.Logger().Debug("cubes: instance buffer created", "instances", len(instances), "bytes", len(data))
	return &InstanceBuffer{
		buffer: dev.CreateBuffer("Instance Buffer", data),
		size:   len(instances),
	}
}

// Update rewrites the whole buffer. It panics when len(instances) differs
// from the committed size.
func (b *InstanceBuffer) Update(dev engine.Device, instances []CubeInstance) {
	if len(instances) != b.size {
		panic(fmt.Sprintf("cubes: instance count changed from %d to %d; instance buffers cannot be resized", b.size, len(instances)))
	}
	dev.WriteBuffer(b.buffer, 0, AppendInstances(make([]byte, 0, len(instances)*InstanceSize), instances))
}

// Len returns the committed instance count.
func (b *InstanceBuffer) Len() int { return b.size }

// Buffer returns the underlying device buffer.
func (b *InstanceBuffer) Buffer() engine.Buffer { return b.buffer }

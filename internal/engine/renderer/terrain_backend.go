package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/alien-lander/internal/engine/renderer/shaders"
	"github.com/Faultbox/alien-lander/internal/engine/scene"
	"github.com/Faultbox/alien-lander/internal/engine/shader"
	"github.com/Faultbox/alien-lander/internal/engine/terrain"
	"github.com/Faultbox/alien-lander/internal/logger"
	"github.com/Faultbox/alien-lander/pkg/math"
)

// TerrainBackend implements scene.Backend on top of OpenGL.
type TerrainBackend struct {
	program uint32

	// Uniform locations
	locViewProj      int32
	locModel         int32
	locTextureMatrix int32
	locHeightField   int32
	locColor         int32

	// Meshes
	profileVAO uint32
	profileVBO uint32
	maskVAO    uint32
	maskVBO    uint32

	heightTex uint32
}

var _ scene.Backend = (*TerrainBackend)(nil)

func newTerrainBackend() (*TerrainBackend, error) {
	program, err := shader.CompileProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	locs, err := shader.Uniforms(program, "uViewProj", "uModel", "uTextureMatrix", "uHeightField", "uColor")
	if err != nil {
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	tb := &TerrainBackend{
		program:          program,
		locViewProj:      locs["uViewProj"],
		locModel:         locs["uModel"],
		locTextureMatrix: locs["uTextureMatrix"],
		locHeightField:   locs["uHeightField"],
		locColor:         locs["uColor"],
	}

	tb.profileVAO, tb.profileVBO = newVertexArray()
	tb.maskVAO, tb.maskVBO = newVertexArray()

	return tb, nil
}

// newVertexArray creates a VAO with a single vec3 position attribute.
func newVertexArray() (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(unsafe.Sizeof(math.Vec3{}))
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	return vao, vbo
}

// UploadGrid replaces both vertex streams.
func (tb *TerrainBackend) UploadGrid(profile, mask []math.Vec3) error {
	if len(mask) != 2*len(profile) {
		return fmt.Errorf("%w: %d profile, %d mask vertices", terrain.ErrGridMismatch, len(profile), len(mask))
	}
	uploadVertices(tb.profileVBO, profile)
	uploadVertices(tb.maskVBO, mask)

	logger.Debug("terrain grid uploaded",
		zap.Int("profileVertices", len(profile)),
		zap.Int("maskVertices", len(mask)),
	)
	return nil
}

func uploadVertices(vbo uint32, verts []math.Vec3) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(verts) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		size := len(verts) * int(unsafe.Sizeof(verts[0]))
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// UploadHeightfield replaces the height texture. Samples outside the
// field read as zero height.
func (tb *TerrainBackend) UploadHeightfield(hf *terrain.Heightfield) error {
	if hf == nil || hf.Width <= 0 || hf.Height <= 0 || len(hf.Pix) < hf.Width*hf.Height {
		return fmt.Errorf("%w: empty height field", terrain.ErrUnsupportedImage)
	}

	if tb.heightTex == 0 {
		gl.GenTextures(1, &tb.heightTex)
	}
	gl.BindTexture(gl.TEXTURE_2D, tb.heightTex)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8,
		int32(hf.Width), int32(hf.Height),
		0, gl.RED, gl.UNSIGNED_BYTE, unsafe.Pointer(&hf.Pix[0]))

	border := [4]float32{0, 0, 0, 0}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])

	gl.BindTexture(gl.TEXTURE_2D, 0)

	logger.Debug("height field uploaded",
		zap.Int("width", hf.Width),
		zap.Int("height", hf.Height),
	)
	return nil
}

// BeginTerrain binds the program, height texture and frame uniforms.
func (tb *TerrainBackend) BeginTerrain(viewProj, model, texture math.Mat4) {
	gl.UseProgram(tb.program)
	gl.UniformMatrix4fv(tb.locViewProj, 1, false, viewProj.Ptr())
	gl.UniformMatrix4fv(tb.locModel, 1, false, model.Ptr())
	gl.UniformMatrix4fv(tb.locTextureMatrix, 1, false, texture.Ptr())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tb.heightTex)
	gl.Uniform1i(tb.locHeightField, 0)
}

// DrawMask draws part of the mask stream as a filled triangle strip.
func (tb *TerrainBackend) DrawMask(first, count int32, c scene.Color) {
	gl.Uniform4f(tb.locColor, c.R, c.G, c.B, c.A)
	gl.BindVertexArray(tb.maskVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, first, count)
}

// DrawProfile draws part of the profile stream as a line strip.
func (tb *TerrainBackend) DrawProfile(first, count int32, c scene.Color) {
	gl.Uniform4f(tb.locColor, c.R, c.G, c.B, c.A)
	gl.BindVertexArray(tb.profileVAO)
	gl.DrawArrays(gl.LINE_STRIP, first, count)
}

// Destroy releases GPU resources.
func (tb *TerrainBackend) Destroy() {
	if tb.profileVAO != 0 {
		gl.DeleteVertexArrays(1, &tb.profileVAO)
		gl.DeleteBuffers(1, &tb.profileVBO)
	}
	if tb.maskVAO != 0 {
		gl.DeleteVertexArrays(1, &tb.maskVAO)
		gl.DeleteBuffers(1, &tb.maskVBO)
	}
	if tb.heightTex != 0 {
		gl.DeleteTextures(1, &tb.heightTex)
	}
	if tb.program != 0 {
		gl.DeleteProgram(tb.program)
	}
}

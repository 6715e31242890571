package http

import "github.com/gofiber/fiber/v2"

const actorKey = "actor"

// ActorMiddleware toma el actor del header X-Actor para atribución de
// auditoría (cajero, terminal o proceso). Sin header se usa "pos".
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := c.Get("X-Actor")
		if actor == "" {
			actor = "pos"
		}
		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// GetActor devuelve el actor de la petición.
func GetActor(c *fiber.Ctx) string {
	if actor, ok := c.Locals(actorKey).(string); ok {
		return actor
	}
	return "pos"
}

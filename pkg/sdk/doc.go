// Package menuboard provides a Go client for the menuboard REST API.
//
// The client keeps the session token and current user in a SessionStore,
// so a CLI or a long-running agent stays logged in across restarts.
//
//	store := menuboard.NewFileSessionStore("~/.config/menuboard/session.json")
//	client, _ := menuboard.New("https://api.menuboard.example",
//	    menuboard.WithSessionStore(store),
//	)
//	_, _ = client.Login(ctx, "asha@example.com", "secret1")
//
//	near, _ := client.Restaurants().Nearby(ctx, menuboard.NearbyParams{
//	    Lat: 12.97, Lng: 77.59, Distance: 2000,
//	})
//	menu, _ := client.MenuItems().ListByRestaurant(ctx, near[0].ID, menuboard.MenuFilter{})
//
// API failures are returned as *APIError and match the package sentinels:
//
//	if errors.Is(err, menuboard.ErrNotFound) { ... }
package menuboard

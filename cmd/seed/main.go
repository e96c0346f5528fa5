// Command seed fills the configured user directory with demo records.
package main

import (
	"context"
	"fmt"

	"tableflip.dev/navigation/pkg/profile"
	"tableflip.dev/navigation/pkg/store"
	"tableflip.dev/navigation/pkg/users"
)

func demoUsers() []profile.User {
	return []profile.User{
		users.ReleaseUser(),
		{Login: "petr", FullName: "Пётр Петров", Avatar: "avatar_placeholder", Status: "На встрече"},
		{Login: "maria", FullName: "Мария Смирнова", Avatar: "avatar_placeholder", Status: "В отпуске"},
		{Login: "travaler", FullName: "Travaler_55672", Avatar: "one", Status: "В дороге"},
	}
}

func main() {
	p, err := store.Load(nil)
	if err != nil {
		panic(err)
	}

	for _, u := range demoUsers() {
		if err := p.Put(u); err != nil {
			panic(err)
		}
	}

	for _, u := range p.List(context.Background()) {
		fmt.Printf("%s\t%s\t%s\n", u.Login, u.FullName, u.Status)
	}
}

// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import "context"

// Repository is the roster store. Deleted artists are invisible to every method.
type Repository interface {
	// List returns one page of artists ordered by stage name, plus the total match count.
	List(context context.Context, filter Filter, limit, offset int) ([]*Artist, int, error)
	FindByID(context context.Context, id string) (*Artist, error)
	Insert(context context.Context, artist *Artist) error
	Update(context context.Context, artist *Artist) error
	SoftDelete(context context.Context, id string) error
}

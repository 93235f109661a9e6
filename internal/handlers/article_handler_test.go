package handlers

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemImagesFromForm(t *testing.T) {
	form := &multipart.Form{
		File: map[string][]*multipart.FileHeader{
			"best_list_item_0_image_file": {{Filename: "first.jpg"}},
			"best_list_item_2_image_file": {{Filename: "third.jpg"}},
			"featured_image_file":         {{Filename: "hero.jpg"}},
			"best_list_item_x_image_file": {{Filename: "bogus.jpg"}},
		},
	}

	images := itemImagesFromForm(form)
	require.Len(t, images, 2)
	assert.Equal(t, "first.jpg", images[0].Filename)
	assert.Equal(t, "third.jpg", images[2].Filename)
}

func TestItemImagesFromFormEmpty(t *testing.T) {
	form := &multipart.Form{File: map[string][]*multipart.FileHeader{}}
	assert.Nil(t, itemImagesFromForm(form))
}

// Package api содержит простые HTTP-хелперы клиента для REST API сервера.
package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
)

// GetJSON sends a GET request and returns the response with its body read.
func GetJSON(url string) (*http.Response, []byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// PostJSON sends a JSON POST request.
func PostJSON(url string, payload any) (*http.Response, []byte, error) {
	return sendJSON(http.MethodPost, url, payload)
}

// PatchJSON sends a JSON PATCH request.
func PatchJSON(url string, payload any) (*http.Response, []byte, error) {
	return sendJSON(http.MethodPatch, url, payload)
}

// Delete sends a DELETE request.
func Delete(url string) (*http.Response, []byte, error) {
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

func sendJSON(method, url string, payload any) (*http.Response, []byte, error) {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// UploadPhoto отправляет multipart-форму с фото и именем пункта чек-листа.
func UploadPhoto(url, itemName, filename string, photo []byte) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("itemName", itemName); err != nil {
		return nil, nil, err
	}
	part, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		return nil, nil, err
	}
	if _, err := part.Write(photo); err != nil {
		return nil, nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

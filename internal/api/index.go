package api

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>qrbanner</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #0a0a0a;
    color: #e0e0e0;
    display: flex;
    justify-content: center;
    padding: 48px 16px;
  }
  .card {
    background: #1a1a1a;
    border: 1px solid #333;
    border-radius: 16px;
    padding: 32px;
    max-width: 520px;
    width: 100%;
  }
  h1 { font-size: 20px; font-weight: 600; margin-bottom: 24px; }
  label { display: block; font-size: 13px; color: #888; margin: 12px 0 4px; }
  input, select {
    width: 100%;
    padding: 8px 10px;
    background: #0a0a0a;
    border: 1px solid #333;
    border-radius: 8px;
    color: #e0e0e0;
  }
  button {
    margin-top: 20px;
    width: 100%;
    padding: 10px;
    border: 0;
    border-radius: 8px;
    background: #00e6ff;
    color: #000;
    font-weight: 600;
    cursor: pointer;
  }
  #preview { margin-top: 24px; width: 100%; display: none; border-radius: 8px; }
  #error { color: #f87171; font-size: 13px; margin-top: 12px; }
</style>
</head>
<body>
<div class="card">
  <h1>qrbanner</h1>
  <label for="url">URL</label>
  <input id="url" placeholder="https://example.com">
  <label for="design">Design</label>
  <select id="design"></select>
  <label for="title">Title</label>
  <input id="title">
  <label for="subtitle">Subtitle</label>
  <input id="subtitle">
  <label for="footer">Footer</label>
  <input id="footer">
  <button id="go">Render</button>
  <div id="error"></div>
  <img id="preview" alt="Rendered banner">
</div>
<script>
(function() {
  var designSel = document.getElementById('design');
  var errorEl = document.getElementById('error');
  var preview = document.getElementById('preview');

  fetch('/designs')
    .then(function(r) { return r.json(); })
    .then(function(designs) {
      designs.forEach(function(d) {
        var opt = document.createElement('option');
        opt.value = d.name;
        opt.textContent = d.name + ' (' + d.geometry + ')';
        if (d.name === 'card') opt.selected = true;
        designSel.appendChild(opt);
      });
    });

  document.getElementById('go').addEventListener('click', function() {
    errorEl.textContent = '';
    var params = new URLSearchParams();
    params.set('url', document.getElementById('url').value);
    params.set('design', designSel.value);
    ['title', 'subtitle', 'footer'].forEach(function(k) {
      var v = document.getElementById(k).value;
      if (v) params.set(k, v);
    });
    var src = '/render?' + params.toString();
    fetch(src).then(function(r) {
      if (!r.ok) {
        return r.json().then(function(body) {
          errorEl.textContent = body.error || ('render failed: ' + r.status);
          preview.style.display = 'none';
        });
      }
      preview.src = src;
      preview.style.display = 'block';
    });
  });
})();
</script>
</body>
</html>`

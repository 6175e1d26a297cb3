package handlers

import "html/template"

// genders offered by the form. The backend accepts any non-empty value.
var genders = []string{"Male", "Female", "Other"}

const sharedCSS = `
:root{--ink:#1E293B;--ink-50:#64748B;--ink-15:#E2E8F0;--bg:#F8FAFC;--navy:#101F38;--emerald:#047857;--red:#B91C1C;--radius:8px}
*{margin:0;padding:0;box-sizing:border-box}
body{font-family:-apple-system,'Segoe UI',sans-serif;background:var(--bg);color:var(--ink);font-size:15px;line-height:1.6}
a{color:#1D4ED8;text-decoration:none}a:hover{text-decoration:underline}
.topbar{background:var(--navy);color:#fff;padding:14px 24px;font-weight:600}
.container{max-width:1040px;margin:0 auto;padding:24px}
.notice{background:#FEF2F2;border:1px solid var(--red);color:var(--red);padding:12px 16px;border-radius:var(--radius);margin-bottom:16px}
form.profile{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:12px;margin-bottom:24px}
form.profile label{display:flex;flex-direction:column;font-size:.85rem;color:var(--ink-50)}
form.profile input,form.profile select{padding:8px;border:1px solid var(--ink-15);border-radius:6px;font-size:.95rem}
.btn{background:var(--navy);color:#fff;border:0;border-radius:6px;padding:10px 20px;font-weight:600;cursor:pointer}
.btn[disabled]{opacity:.5;cursor:not-allowed}
.toolbar{display:flex;gap:12px;align-items:center;flex-wrap:wrap;margin-bottom:16px}
.filter-link{padding:4px 12px;border:1px solid var(--ink-15);border-radius:999px;color:var(--ink)}
.filter-link.active{background:var(--navy);color:#fff}
.cards-grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(300px,1fr));gap:16px;margin-bottom:32px}
.scheme-card{background:#fff;border:1px solid var(--ink-15);border-radius:var(--radius);padding:16px}
.card-head{display:flex;justify-content:space-between;gap:8px;margin-bottom:8px}
.scheme-desc{color:var(--ink-50);font-size:.9rem;margin-bottom:8px}
.match-badge{display:inline-block;background:#ECFDF5;color:var(--emerald);border-radius:999px;padding:2px 10px;font-size:.78rem;margin:0 4px 4px 0}
.badge-type{border-radius:999px;padding:2px 10px;font-size:.75rem;font-weight:600}
.bg-emerald-50{background:#ECFDF5}.text-emerald-700{color:var(--emerald)}
.bg-blue-50{background:#EFF6FF}.text-blue-700{color:#1D4ED8}
.no-results{padding:24px;text-align:center;color:var(--ink-50)}
.rejection-row{background:#fff;border:1px solid var(--ink-15);border-radius:var(--radius);margin-bottom:8px}
.collapse-btn{padding:12px 16px;cursor:pointer;display:flex;justify-content:space-between}
.rejection-accordion{padding:0 16px 12px}
.gaps-title{font-weight:600;font-size:.85rem}
.gap-list{color:var(--red);padding-left:20px;font-size:.88rem}
.animate-fade-in{animation:fade .4s ease both}
@keyframes fade{from{opacity:0;transform:translateY(6px)}to{opacity:1;transform:none}}
`

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>GovScheme India</title>
<meta name="robots" content="noindex">
<style>{{.CSS}}</style>
</head>
<body>
<div class="topbar">GovScheme India</div>
<main class="container">
{{if .Notice}}<div class="notice" role="alert">{{.Notice}}</div>{{end}}
<form class="profile" method="post" action="/scan">
<label>Age<input type="number" name="age" min="0" max="120" required value="{{.Form.age}}"></label>
<label>Annual income (₹)<input type="number" name="income" min="0" required value="{{.Form.income}}"></label>
<label>State<input type="text" name="state" required value="{{.Form.state}}"></label>
<label>Occupation<input type="text" name="occupation" required value="{{.Form.occupation}}"></label>
<label>Gender<select name="gender" required>{{$g := .Form.gender}}{{range .Genders}}<option{{if eq . $g}} selected{{end}}>{{.}}</option>{{end}}</select></label>
<label>Education<select name="education" required>{{$e := .Form.education}}{{range .Education}}<option{{if eq . $e}} selected{{end}}>{{.}}</option>{{end}}</select></label>
<div><button class="btn" id="submitBtn" type="submit"{{if .Busy}} disabled{{end}}>{{if .Busy}}Checking…{{else}}Check eligibility{{end}}</button></div>
</form>
{{if .HasResults}}
<section id="results">
<div class="toolbar">
<form method="get" action="/"><input type="search" name="q" placeholder="Search schemes" value="{{.Search}}"><input type="hidden" name="type" value="{{.Filter}}"></form>
{{range .Filters}}<a class="filter-link{{if .Active}} active{{end}}" href="{{.Href}}">{{.Label}}</a>{{end}}
<button class="btn" id="shareBtn" type="button">Share</button>
<a href="/report.pdf">Download PDF</a>
</div>
<h2>Eligible ({{.EligibleCount}})</h2>
{{.Eligible}}
<h2>Not eligible ({{.NotEligibleCount}})</h2>
{{.NotEligible}}
</section>
<script>
document.getElementById('shareBtn').addEventListener('click',function(){
var b=this;
fetch('/share',{method:'POST'}).then(function(r){return r.json().then(function(d){return{ok:r.ok,d:d}})}).then(function(res){
if(!res.ok){alert(res.d.error);return}
navigator.clipboard.writeText(res.d.text).then(function(){b.textContent='Copied!';setTimeout(function(){b.textContent='Share'},2000)})
})
});
</script>
{{else}}
<section id="resultsPlaceholder" class="no-results"><p>{{.IdleText}}</p></section>
{{end}}
</main>
</body>
</html>`))
